package main

import (
	"os"

	"github.com/mwestrom/tally/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
