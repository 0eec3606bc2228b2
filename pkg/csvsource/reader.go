package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
)

// ErrShortRow is returned for a row with fewer fields than the layout needs.
var ErrShortRow = errors.New("row has too few fields")

// RowError reports a problem with a single data row.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader converts CSV rows into bids.
type Reader struct {
	csv    *csv.Reader
	layout Layout
	header bool
}

// NewReader creates a Reader over r using the given layout.
func NewReader(r io.Reader, layout Layout) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	return &Reader{
		csv:    cr,
		layout: layout,
		header: layout.HasHeader,
	}
}

// Next returns the next bid. It returns io.EOF when the input is exhausted
// and a *RowError when a row does not fit the layout.
func (r *Reader) Next() (bid.Bid, error) {
	if r.header {
		r.header = false
		if _, err := r.csv.Read(); err != nil {
			return bid.Bid{}, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return bid.Bid{}, err
	}

	if len(record) < r.layout.width() {
		line, _ := r.csv.FieldPos(0)
		return bid.Bid{}, &RowError{Line: line, Err: ErrShortRow}
	}

	return bid.Bid{
		ID:     strings.TrimSpace(record[r.layout.ID]),
		Title:  record[r.layout.Title],
		Fund:   record[r.layout.Fund],
		Amount: bid.ParseAmount(record[r.layout.Amount]),
	}, nil
}

// Appender receives loaded bids.
type Appender interface {
	Append(b bid.Bid)
}

// Result summarizes a load.
type Result struct {
	Loaded  int
	Skipped int
}

// Load reads every bid in the file at path and appends it to dst.
// Rows that do not fit the layout are skipped. A malformed file stops the
// load; bids read before the error stay in dst.
func Load(ctx context.Context, path string, layout Layout, dst Appender) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	slog.Debug("Loading CSV file", "path", path)

	result, err := LoadFrom(ctx, f, layout, dst)
	if err != nil {
		return result, err
	}

	slog.Debug("Loaded CSV file", "path", path, "loaded", result.Loaded, "skipped", result.Skipped)
	return result, nil
}

// LoadFrom streams bids from r into dst with the same rules as Load.
func LoadFrom(ctx context.Context, r io.Reader, layout Layout, dst Appender) (Result, error) {
	var result Result

	reader := NewReader(r, layout)
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		b, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return result, nil
		}

		var rowErr *RowError
		if errors.As(err, &rowErr) {
			slog.Warn("Skipping CSV row", "line", rowErr.Line, "error", rowErr.Err)
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to read CSV file: %w", err)
		}

		dst.Append(b)
		result.Loaded++
	}
}
