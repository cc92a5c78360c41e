package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword reads a password from the terminal without echo. When stdin
// is piped it falls back to /dev/tty, and errors out if no terminal is
// available rather than echoing a password read.
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return password, nil
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, fmt.Errorf("cannot prompt for password: stdin is not a terminal and /dev/tty is unavailable; use --password or CLIPVAULT_PASSWORD")
	}
	defer tty.Close()

	password, err := term.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}
