package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/yiblet/clipvault/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	if err := args.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println()
		parser.WriteUsage(os.Stderr)
		os.Exit(1)
	}

	// Create CLI instance wired from the arguments
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer cliHandler.Close()

	// Execute the command; with no subcommand this opens the TUI browser
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
