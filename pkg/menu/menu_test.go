package menu

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
	"github.com/shunichi-ikebuchi/bidlist/pkg/bidlist"
	"github.com/shunichi-ikebuchi/bidlist/pkg/csvsource"
	"github.com/shunichi-ikebuchi/bidlist/pkg/db"
)

const sampleCSV = `ArticleTitle,ArticleID,Department,CloseDate,WinningBid,InventoryID,VehicleID,ReceiptNumber,Fund
Table,97990,General Services,1/5/2017,$6.00,,,,General Fund
Laptop,98109,IT,1/6/2017,"$1,200.00",,,,Enterprise
`

type fakeRecorder struct {
	timings []db.Timing
	err     error
}

func (f *fakeRecorder) RecordTiming(_ context.Context, timing db.Timing) error {
	f.timings = append(f.timings, timing)
	return f.err
}

func (f *fakeRecorder) Close() error { return nil }

type harness struct {
	list *bidlist.Guarded
	out  *bytes.Buffer
	rec  *fakeRecorder
	menu *Menu
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	csvPath := filepath.Join(t.TempDir(), "bids.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))

	h := &harness{
		list: bidlist.NewGuarded(),
		out:  &bytes.Buffer{},
		rec:  &fakeRecorder{},
	}
	h.menu = New(Options{
		List:       h.list,
		In:         strings.NewReader(input),
		Out:        h.out,
		CSVPath:    csvPath,
		Layout:     csvsource.DefaultLayout,
		DefaultKey: "98109",
		Recorder:   h.rec,
		RunID:      "run-1",
	})
	return h
}

func TestRunExit(t *testing.T) {
	h := newHarness(t, "9\n")
	require.NoError(t, h.menu.Run(context.Background()))

	assert.Contains(t, h.out.String(), "1. Enter a Bid")
	assert.Contains(t, h.out.String(), "9. Exit")
	assert.True(t, strings.HasSuffix(h.out.String(), "Goodbye.\n"))
}

func TestRunEndOfInput(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Goodbye.")
}

func TestRunEnterBid(t *testing.T) {
	h := newHarness(t, "1\n555\nOffice Chair\nGeneral Fund\n$1,050.00\n9\n")
	require.NoError(t, h.menu.Run(context.Background()))

	b, ok := h.list.Find("555")
	require.True(t, ok)
	assert.Equal(t, bid.Bid{ID: "555", Title: "Office Chair", Fund: "General Fund", Amount: 1050}, b)
	assert.Contains(t, h.out.String(), "555: Office Chair | 1,050 | General Fund")
}

func TestRunEnterBidInterrupted(t *testing.T) {
	h := newHarness(t, "1\n555\nOffice Chair\n")
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, 0, h.list.Size())
}

func TestRunLoadDisplayFind(t *testing.T) {
	h := newHarness(t, "2\n3\n4\n\n4\n97990\n9\n")
	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Loading CSV file")
	assert.Contains(t, out, "2 bids read")
	assert.Contains(t, out, "97990: Table | 6 | General Fund")
	assert.Contains(t, out, "98109: Laptop | 1,200 | Enterprise")
	assert.Contains(t, out, "Enter bid id [98109]: ")
	assert.Contains(t, out, "time: ")
	assert.Contains(t, out, " seconds")

	require.Len(t, h.rec.timings, 3)
	assert.Equal(t, db.OperationLoad, h.rec.timings[0].Operation)
	assert.Equal(t, 2, h.rec.timings[0].ItemCount)
	assert.Equal(t, db.OperationFind, h.rec.timings[1].Operation)
	assert.Equal(t, "98109", h.rec.timings[1].BidKey)
	assert.Equal(t, "97990", h.rec.timings[2].BidKey)
	for _, timing := range h.rec.timings {
		assert.Equal(t, "run-1", timing.RunID)
	}
}

func TestRunFindMissing(t *testing.T) {
	h := newHarness(t, "4\nnope\n9\n")
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Bid Id nope not found.")
}

func TestRunRemove(t *testing.T) {
	h := newHarness(t, "5\n\n2\n5\n97990\n5\n97990\n9\n")
	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "List is empty. No bids to remove.")
	assert.Contains(t, out, "Bid 97990 removed successfully.")
	assert.Contains(t, out, "Bid 97990 not found.")
	assert.Equal(t, 1, h.list.Size())
}

func TestRunInvalidChoice(t *testing.T) {
	h := newHarness(t, "abc\n7\n9\n")
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(h.out.String(), "Invalid choice."))
}

func TestRunLoadMissingFile(t *testing.T) {
	h := newHarness(t, "2\n9\n")
	h.menu.csvPath = filepath.Join(t.TempDir(), "missing.csv")

	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Error: failed to open CSV file")
	assert.Empty(t, h.rec.timings)
}

func TestRunLoadReadErrorReportsSize(t *testing.T) {
	h := newHarness(t, "1\n555\nOffice Chair\nGeneral Fund\n$10\n2\n9\n")
	h.menu.csvPath = t.TempDir()

	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "1 bids read")
	assert.Contains(t, out, "time: ")
	assert.Contains(t, out, "Error: failed to read CSV file")
	assert.Equal(t, 1, h.list.Size())
	assert.Empty(t, h.rec.timings)
}

func TestRunKeyPromptEndOfInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"find", "2\n4\n"},
		{"remove", "2\n5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input)
			require.NoError(t, h.menu.Run(context.Background()))

			assert.Equal(t, 2, h.list.Size())
			require.Len(t, h.rec.timings, 1)
			assert.Equal(t, db.OperationLoad, h.rec.timings[0].Operation)
			assert.NotContains(t, h.out.String(), "98109: Laptop")
			assert.True(t, strings.HasSuffix(h.out.String(), "Goodbye.\n"))
		})
	}
}

func TestRunCancelled(t *testing.T) {
	h := newHarness(t, "3\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.menu.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, "4\n\n9\n")
	h.rec.err = errors.New("disk full")

	require.NoError(t, h.menu.Run(context.Background()))
	assert.Len(t, h.rec.timings, 1)
}

func TestWorksWithPlainList(t *testing.T) {
	list := bidlist.New()
	list.Append(bid.Bid{ID: "1", Title: "A"})
	out := &bytes.Buffer{}

	m := New(Options{List: list, Out: out, DefaultKey: "1"})
	assert.True(t, m.FindBid(context.Background(), "1"))
	assert.False(t, m.FindBid(context.Background(), "2"))

	m.RemoveBid("1")
	assert.Contains(t, out.String(), "Bid 1 removed successfully.")
	assert.Equal(t, 0, list.Size())
}

func TestPrintElapsed(t *testing.T) {
	out := &bytes.Buffer{}
	PrintElapsed(out, 1500*time.Millisecond)
	assert.Equal(t, "time: 1500 milliseconds\ntime: 1.500000 seconds\n", out.String())
}
