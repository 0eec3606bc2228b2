// Package menu implements the interactive text menu for working with a bid list.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/bidlist/pkg/bid"
	"github.com/shunichi-ikebuchi/bidlist/pkg/bidlist"
	"github.com/shunichi-ikebuchi/bidlist/pkg/csvsource"
	"github.com/shunichi-ikebuchi/bidlist/pkg/db"
)

// List is the bid container the menu operates on.
// Both *bidlist.List and *bidlist.Guarded satisfy it.
type List interface {
	Append(b bid.Bid)
	Find(key string) (bid.Bid, bool)
	Remove(key string) error
	Size() int
	All() iter.Seq[bid.Bid]
}

// Menu choices.
const (
	ChoiceEnter   = 1
	ChoiceLoad    = 2
	ChoiceDisplay = 3
	ChoiceFind    = 4
	ChoiceRemove  = 5
	ChoiceExit    = 9
)

// Options configures a Menu.
type Options struct {
	List       List
	In         io.Reader
	Out        io.Writer
	CSVPath    string
	Layout     csvsource.Layout
	DefaultKey string
	Recorder   db.Recorder // optional; timings are discarded when nil
	RunID      string
}

// Menu drives a bid list from line-oriented input.
type Menu struct {
	list       List
	in         *bufio.Scanner
	out        io.Writer
	csvPath    string
	layout     csvsource.Layout
	defaultKey string
	recorder   db.Recorder
	runID      string
}

// New creates a Menu. A nil In behaves like empty input.
func New(opts Options) *Menu {
	in := opts.In
	if in == nil {
		in = strings.NewReader("")
	}

	rec := opts.Recorder
	if rec == nil {
		rec = db.NewNoopRecorder()
	}

	return &Menu{
		list:       opts.List,
		in:         bufio.NewScanner(in),
		out:        opts.Out,
		csvPath:    opts.CSVPath,
		layout:     opts.Layout,
		defaultKey: opts.DefaultKey,
		recorder:   rec,
		runID:      opts.RunID,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		line, ok := m.readLine()
		if !ok {
			break
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(m.out, "Invalid choice.")
			continue
		}

		switch choice {
		case ChoiceEnter:
			b, ok := m.readBid()
			if !ok {
				break
			}
			m.list.Append(b)
			fmt.Fprintln(m.out, b)

		case ChoiceLoad:
			if err := m.LoadBids(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Fprintf(m.out, "Error: %v\n", err)
			}

		case ChoiceDisplay:
			m.DisplayAll()

		case ChoiceFind:
			key, ok := m.readKey()
			if !ok {
				break
			}
			m.FindBid(ctx, key)

		case ChoiceRemove:
			key, ok := m.readKey()
			if !ok {
				break
			}
			m.RemoveBid(key)

		case ChoiceExit:
			fmt.Fprintln(m.out, "Goodbye.")
			return nil

		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
	}

	fmt.Fprintln(m.out, "Goodbye.")
	return m.in.Err()
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, `Menu:
  1. Enter a Bid
  2. Load Bids
  3. Display All Bids
  4. Find Bid
  5. Remove Bid
  9. Exit
Enter choice: `)
}

// LoadBids appends every bid from the configured CSV file and reports the
// resulting list size and elapsed time. The size and time are printed even
// when the load fails partway; bids read before the failure stay in the list.
func (m *Menu) LoadBids(ctx context.Context) error {
	fmt.Fprintf(m.out, "Loading CSV file %s\n", m.csvPath)

	start := time.Now()
	result, err := csvsource.Load(ctx, m.csvPath, m.layout, m.list)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("Failed to load bids", "path", m.csvPath, "loaded", result.Loaded, "error", err)
		if ctx.Err() == nil {
			fmt.Fprintf(m.out, "%d bids read\n", m.list.Size())
			PrintElapsed(m.out, elapsed)
		}
		return err
	}

	slog.Info("Loaded bids", "path", m.csvPath, "loaded", result.Loaded, "skipped", result.Skipped)
	fmt.Fprintf(m.out, "%d bids read\n", m.list.Size())
	PrintElapsed(m.out, elapsed)

	m.record(ctx, db.Timing{Operation: db.OperationLoad, ItemCount: m.list.Size(), Duration: elapsed})
	return nil
}

// DisplayAll prints every bid in list order.
func (m *Menu) DisplayAll() {
	for b := range m.list.All() {
		fmt.Fprintln(m.out, b)
	}
}

// FindBid looks up key, prints the bid or a not-found line and the elapsed
// time, and reports whether the bid was found.
func (m *Menu) FindBid(ctx context.Context, key string) bool {
	start := time.Now()
	b, ok := m.list.Find(key)
	elapsed := time.Since(start)

	if ok {
		fmt.Fprintln(m.out, b)
	} else {
		fmt.Fprintf(m.out, "Bid Id %s not found.\n", key)
	}
	PrintElapsed(m.out, elapsed)

	m.record(ctx, db.Timing{Operation: db.OperationFind, BidKey: key, ItemCount: m.list.Size(), Duration: elapsed})
	return ok
}

// RemoveBid removes key and prints the outcome.
func (m *Menu) RemoveBid(key string) {
	err := m.list.Remove(key)
	switch {
	case err == nil:
		fmt.Fprintf(m.out, "Bid %s removed successfully.\n", key)
	case errors.Is(err, bidlist.ErrEmptyList):
		fmt.Fprintln(m.out, "List is empty. No bids to remove.")
	case errors.Is(err, bidlist.ErrNotFound):
		fmt.Fprintf(m.out, "Bid %s not found.\n", key)
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}

// PrintElapsed writes d in milliseconds and seconds.
func PrintElapsed(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "time: %d milliseconds\n", d.Milliseconds())
	fmt.Fprintf(w, "time: %.6f seconds\n", d.Seconds())
}

func (m *Menu) record(ctx context.Context, timing db.Timing) {
	timing.RunID = m.runID
	if err := m.recorder.RecordTiming(ctx, timing); err != nil {
		slog.Warn("Failed to record timing", "operation", timing.Operation, "error", err)
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// readKey prompts for a bid ID, falling back to the default key on a blank
// line. It returns false if input ends first.
func (m *Menu) readKey() (string, bool) {
	fmt.Fprintf(m.out, "Enter bid id [%s]: ", m.defaultKey)
	line, ok := m.readLine()
	if !ok {
		fmt.Fprintln(m.out)
		return "", false
	}
	if key := strings.TrimSpace(line); key != "" {
		return key, true
	}
	return m.defaultKey, true
}

// readBid prompts for every bid field. It returns false if input ends first.
func (m *Menu) readBid() (bid.Bid, bool) {
	prompts := []string{"Enter Id: ", "Enter title: ", "Enter fund: ", "Enter amount: "}
	answers := make([]string, 0, len(prompts))

	for _, prompt := range prompts {
		fmt.Fprint(m.out, prompt)
		line, ok := m.readLine()
		if !ok {
			fmt.Fprintln(m.out)
			return bid.Bid{}, false
		}
		answers = append(answers, strings.TrimSpace(line))
	}

	return bid.Bid{
		ID:     answers[0],
		Title:  answers[1],
		Fund:   answers[2],
		Amount: bid.ParseAmount(answers[3]),
	}, true
}
