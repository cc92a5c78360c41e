package cli

import (
	"fmt"
)

// Args represents the top-level command structure
type Args struct {
	Watch   *WatchCmd   `arg:"subcommand:watch" help:"Run the clipboard watcher in the foreground"`
	History *HistoryCmd `arg:"subcommand:history" help:"List captured entries"`
	Search  *SearchCmd  `arg:"subcommand:search" help:"Search entry contents"`
	Restore *RestoreCmd `arg:"subcommand:restore" help:"Write an entry back to the clipboard"`
	Verify  *VerifyCmd  `arg:"subcommand:verify" help:"Decrypt an entry's ciphertext file and check it against the index"`
	Clear   *ClearCmd   `arg:"subcommand:clear" help:"Delete all entries and their ciphertext files"`
	Stats   *StatsCmd   `arg:"subcommand:stats" help:"Show vault statistics"`

	Vault       *string `arg:"--vault,env:CLIPVAULT_DIR" help:"Vault directory (default ~/.config/clipvault/vault)"`
	Password    *string `arg:"--password,env:CLIPVAULT_PASSWORD" help:"Vault password"`
	AskPassword bool    `arg:"--ask-password" help:"Prompt for the vault password"`
	NoEncrypt   bool    `arg:"--no-encrypt" help:"Disable encryption at rest"`
}

// WatchCmd represents the 'clipvault watch' command (background capture mode)
type WatchCmd struct{}

// HistoryCmd represents the 'clipvault history' command (one-shot listing)
type HistoryCmd struct {
	Limit int `arg:"-n,--limit" default:"20" help:"Maximum entries to show (0 = all)"`
}

// SearchCmd represents the 'clipvault search' command
type SearchCmd struct {
	Query string `arg:"positional,required" help:"Substring to search for (case-insensitive)"`
}

// RestoreCmd represents the 'clipvault restore' command
type RestoreCmd struct {
	Index int `arg:"positional,required" help:"History index to restore (0 = newest)"`
}

// VerifyCmd represents the 'clipvault verify' command
type VerifyCmd struct {
	Index int `arg:"positional,required" help:"History index to verify (0 = newest)"`
}

// ClearCmd represents the 'clipvault clear' command
type ClearCmd struct {
	Force bool `arg:"-f,--force" help:"Skip the confirmation prompt"`
}

// StatsCmd represents the 'clipvault stats' command
type StatsCmd struct{}

// Description returns the program description
func (Args) Description() string {
	return "clipvault - Encrypted clipboard history vault"
}

// Version returns the program version
func (Args) Version() string {
	return "clipvault 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  clipvault watch                  # Capture clipboard changes until interrupted
  clipvault history -n 10          # Show the ten most recent entries
  clipvault search "api key"       # Find entries containing a substring
  clipvault restore 2              # Put entry 2 back on the clipboard
  clipvault verify 0               # Check entry 0 against its ciphertext file
  clipvault                        # Interactive history browser

Without --password, CLIPVAULT_PASSWORD, or --ask-password, the encryption
password is derived from the machine hostname. That default is weak and
guessable; anyone with access to this machine can decrypt the vault.`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.Restore != nil && args.Restore.Index < 0 {
		return fmt.Errorf("restore index must be non-negative")
	}
	if args.Verify != nil && args.Verify.Index < 0 {
		return fmt.Errorf("verify index must be non-negative")
	}
	if args.History != nil && args.History.Limit < 0 {
		return fmt.Errorf("history limit must be non-negative")
	}
	if args.Password != nil && args.AskPassword {
		return fmt.Errorf("cannot specify both --password and --ask-password")
	}
	return nil
}
