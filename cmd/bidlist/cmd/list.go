package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Load the CSV and display every bid",
	Long: `Load bids from the configured CSV file and print them in file order,
followed by the number of bids read and the load time.

Example:
  bidlist list --csv eBid_Monthly_Sales.csv`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(cmd *cobra.Command, args []string) {
	s := newSession(cmd)

	err := s.menu.LoadBids(cmd.Context())
	if err == nil {
		s.menu.DisplayAll()
	}
	s.Close()

	exitOnError(err, "failed to load bids")
}
