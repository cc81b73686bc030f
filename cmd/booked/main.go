package main

import (
	"os"

	"github.com/booked-dev/booked/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
