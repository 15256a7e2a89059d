package main

import (
	"fmt"
	"os"

	"github.com/pablasso/study/internal/cli"
)

func main() {
	// If no args, launch TUI; otherwise route to CLI
	var err error
	if len(os.Args) == 1 {
		err = cli.RunTUI()
	} else {
		err = cli.Execute()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
