package main

import (
	"os"

	"dentalsite/cmd/dentalsite/commands"
)

// ENTRY POINT

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
