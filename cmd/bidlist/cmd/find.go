package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// findCmd represents the find command.
var findCmd = &cobra.Command{
	Use:   "find [bid-id]",
	Short: "Load the CSV and look up one bid",
	Long: `Load bids from the configured CSV file and search the list for a bid ID.
Without an argument the default key (--key or BIDLIST_BID_KEY) is used.

Exits with status 1 when the bid is not found.

Example:
  bidlist find 98109`,
	Args: cobra.MaximumNArgs(1),
	Run:  runFind,
}

func runFind(cmd *cobra.Command, args []string) {
	s := newSession(cmd)

	key := s.cfg.BidKey
	if len(args) == 1 {
		key = args[0]
	}

	if err := s.menu.LoadBids(cmd.Context()); err != nil {
		s.Close()
		exitOnError(err, "failed to load bids")
	}

	found := s.menu.FindBid(cmd.Context(), key)
	s.Close()

	if !found {
		slog.Debug("Bid not found", "key", key)
		os.Exit(1)
	}
}
