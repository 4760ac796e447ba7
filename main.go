package main

import (
	"errors"
	"fmt"
	"os"

	"ui_harness/presentation/terminal"
)

func main() {
	termInterface := terminal.NewTerminalInterface()

	if err := termInterface.Run(os.Args[1:]); err != nil {
		if !errors.Is(err, terminal.ErrScenariosFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
