package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/bidlist/pkg/db"
)

var recentLimit int

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display timing statistics",
	Long: `Display statistics about timed loads and lookups from previous runs.

Shows:
- Count, average and maximum duration per operation
- Number of recorded runs
- Most recently used CSV file
- The latest recorded timings

Example:
  bidlist stats
  bidlist stats --recent 20`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&recentLimit, "recent", 10, "number of recent timings to show")
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Info("Loading configuration")

	cfg := loadConfig()
	if err := cfg.Validate("history.dataDir"); err != nil {
		exitOnError(err, "invalid configuration")
	}

	paths := newPathResolver(cfg)
	dbPath := paths.GetDatabasePath()
	if !paths.FileExists(dbPath) {
		fmt.Fprintf(cmd.OutOrStdout(), "No timing history at %s\n", dbPath)
		return
	}

	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	history := db.NewTimingHistory(conn)
	ctx := cmd.Context()

	stats, err := history.GetStats(ctx)
	exitOnError(err, "failed to get statistics")

	lastCSV, err := history.GetMetadata(ctx, metadataLastCSV)
	exitOnError(err, "failed to get metadata")

	recent, err := history.Recent(ctx, recentLimit)
	exitOnError(err, "failed to get recent timings")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Timing Statistics ===")
	fmt.Fprintf(out, "Database:       %s\n", conn.GetPath())
	for _, op := range stats.Operations {
		fmt.Fprintf(out, "%-6s count: %-6d avg: %-12v max: %v\n", op.Operation, op.Count, op.Average, op.Max)
	}
	fmt.Fprintf(out, "Recorded runs:  %d\n", stats.TotalRuns)

	if stats.LastRecorded.Valid {
		fmt.Fprintf(out, "Last recorded:  %s\n", stats.LastRecorded.String)
	} else {
		fmt.Fprintf(out, "Last recorded:  (never)\n")
	}
	if lastCSV != "" {
		fmt.Fprintf(out, "Last CSV file:  %s\n", lastCSV)
	}

	if len(recent) > 0 {
		fmt.Fprintln(out, "\n=== Recent Timings ===")
		for _, t := range recent {
			key := t.BidKey
			if key == "" {
				key = "-"
			}
			fmt.Fprintf(out, "%s  %-6s key=%-10s items=%-8d %v\n",
				t.RecordedAt.Format("2006-01-02 15:04:05"), t.Operation, key, t.ItemCount, t.Duration)
		}
	}

	fmt.Fprintln(out)

	slog.Info("Statistics displayed successfully")
}
