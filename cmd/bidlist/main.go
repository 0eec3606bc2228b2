// Package main is the entry point for the bidlist CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/bidlist/cmd/bidlist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
