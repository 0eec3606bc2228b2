// Package cmd provides CLI commands for bidlist.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	debug      bool
	csvPath    string
	layoutPath string
	bidKey     string

	// logLevel is raised to debug by --debug or by DEBUG in the loaded config.
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bidlist",
	Short: "Load, search and edit bids held in a linked list",
	Long: `bidlist loads bids from a CSV export into an in-memory linked list
and lets you add, display, find and remove them from a text menu.

It supports:
- Loading eBid monthly sales exports (or any CSV with a column layout file)
- Timing loads and lookups
- Keeping a SQLite history of timings across runs

Example:
  bidlist --csv eBid_Monthly_Sales.csv
  bidlist find 98109
  bidlist stats`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel.Set(slog.LevelInfo)
		if debug {
			logLevel.Set(slog.LevelDebug)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
	Run: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "", "bid CSV file (overrides BIDLIST_CSV_PATH)")
	rootCmd.PersistentFlags().StringVar(&layoutPath, "layout", "", "YAML column layout (overrides BIDLIST_LAYOUT_PATH)")
	rootCmd.PersistentFlags().StringVar(&bidKey, "key", "", "default bid ID for find/remove (overrides BIDLIST_BID_KEY)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(statsCmd)
}

func runMenu(cmd *cobra.Command, args []string) {
	s := newSession(cmd)
	err := s.menu.Run(cmd.Context())
	s.Close()
	exitOnError(err, "menu stopped")
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
