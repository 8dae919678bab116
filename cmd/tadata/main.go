// Package main is the entry point for the tadata CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tadata-org/tadata-sdk-go/cmd/tadata/commands"
	"github.com/tadata-org/tadata-sdk-go/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(commands.ExitUser)
}
