package csvsource

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
	"github.com/shunichi-ikebuchi/bidlist/pkg/bidlist"
)

const sampleCSV = `ArticleTitle,ArticleID,Department,CloseDate,WinningBid,InventoryID,VehicleID,ReceiptNumber,Fund
Table,97990,General Services,1/5/2017,$6.00,,,,General Fund
"Chair, Office",97991,General Services,1/5/2017,"$1,015.25",,,,General Fund
Hoover Steam Vac,97992,Police,1/6/2017,$27.00,,,,Enterprise
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReaderNext(t *testing.T) {
	r := NewReader(strings.NewReader(sampleCSV), DefaultLayout)

	var got []bid.Bid
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, b)
	}

	require.Len(t, got, 3)
	assert.Equal(t, bid.Bid{ID: "97990", Title: "Table", Fund: "General Fund", Amount: 6}, got[0])
	assert.Equal(t, "Chair, Office", got[1].Title)
	assert.InDelta(t, 1015.25, got[1].Amount, 1e-9)
	assert.Equal(t, "Enterprise", got[2].Fund)
}

func TestReaderShortRow(t *testing.T) {
	input := "h1,h2\nTitle,1,x,y,$5,,,,Fund\nonly,two\n"
	r := NewReader(strings.NewReader(input), DefaultLayout)

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)
	assert.ErrorIs(t, err, ErrShortRow)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderWithoutHeader(t *testing.T) {
	layout := Layout{ID: 0, Title: 1, Amount: 2, Fund: 3}
	r := NewReader(strings.NewReader("42,Desk,$10,Capital\n"), layout)

	b, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, bid.Bid{ID: "42", Title: "Desk", Amount: 10, Fund: "Capital"}, b)
}

func TestReaderUnparsableAmountDefaultsToZero(t *testing.T) {
	layout := Layout{ID: 0, Title: 1, Amount: 2, Fund: 3}
	r := NewReader(strings.NewReader("42,Desk,pending,Capital\n"), layout)

	b, err := r.Next()
	require.NoError(t, err)
	assert.Zero(t, b.Amount)
}

func TestLoad(t *testing.T) {
	content := sampleCSV + "broken,row\n"
	path := writeFile(t, "bids.csv", content)

	list := bidlist.New()
	result, err := Load(context.Background(), path, DefaultLayout, list)
	require.NoError(t, err)

	assert.Equal(t, Result{Loaded: 3, Skipped: 1}, result)
	assert.Equal(t, 3, list.Size())

	b, ok := list.Find("97991")
	require.True(t, ok)
	assert.Equal(t, "Chair, Office", b.Title)
}

func TestLoadAppendsToExistingList(t *testing.T) {
	path := writeFile(t, "bids.csv", sampleCSV)

	list := bidlist.NewGuarded()
	list.Append(bid.Bid{ID: "manual"})

	_, err := Load(context.Background(), path, DefaultLayout, list)
	require.NoError(t, err)

	snapshot := list.Snapshot()
	require.Len(t, snapshot, 4)
	assert.Equal(t, "manual", snapshot[0].ID)
	assert.Equal(t, "97992", snapshot[3].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), DefaultLayout, bidlist.New())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromReadErrorKeepsEarlierRows(t *testing.T) {
	errDisk := errors.New("disk read failed")
	r := io.MultiReader(strings.NewReader(sampleCSV), iotest.ErrReader(errDisk))

	list := bidlist.New()
	result, err := LoadFrom(context.Background(), r, DefaultLayout, list)
	require.ErrorIs(t, err, errDisk)
	assert.ErrorContains(t, err, "failed to read CSV file")

	assert.Equal(t, 3, result.Loaded)
	assert.Equal(t, 3, list.Size())
	_, ok := list.Find("97992")
	assert.True(t, ok)
}

func TestLoadCancelled(t *testing.T) {
	path := writeFile(t, "bids.csv", sampleCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list := bidlist.New()
	_, err := Load(ctx, path, DefaultLayout, list)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, list.Size())
}

func TestLoadLayout(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		layout, err := LoadLayout("")
		require.NoError(t, err)
		assert.Equal(t, DefaultLayout, layout)
	})

	t.Run("partial override", func(t *testing.T) {
		path := writeFile(t, "layout.yaml", "id: 0\ntitle: 2\nhas_header: false\n")
		layout, err := LoadLayout(path)
		require.NoError(t, err)
		assert.Equal(t, Layout{ID: 0, Title: 2, Amount: 4, Fund: 8, HasHeader: false}, layout)
	})

	t.Run("negative index", func(t *testing.T) {
		path := writeFile(t, "layout.yaml", "fund: -1\n")
		_, err := LoadLayout(path)
		assert.ErrorContains(t, err, "fund")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "layout.yaml", "id: [\n")
		_, err := LoadLayout(path)
		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
