// Package cli wires the vault together behind the command surface: it
// resolves configuration and the encryption password, opens the store,
// and executes the selected command against the monitor façade.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/yiblet/clipvault/internal/clipboard/sysboard"
	"github.com/yiblet/clipvault/internal/config"
	"github.com/yiblet/clipvault/internal/logging"
	"github.com/yiblet/clipvault/internal/monitor"
	"github.com/yiblet/clipvault/internal/store/vaultstore"
	"github.com/yiblet/clipvault/internal/tui"
	"github.com/yiblet/clipvault/internal/vault"
	"github.com/yiblet/clipvault/internal/vaultfs"
)

// CLI handles the command-line interface
type CLI struct {
	cfg     *config.Config
	store   *vaultstore.Store
	monitor *monitor.Monitor
	log     logging.Logger
}

// New creates a CLI instance with default arguments
func New() (*CLI, error) {
	return NewWithArgs(&Args{})
}

// NewWithArgs creates a CLI instance wired from parsed arguments
func NewWithArgs(args *Args) (*CLI, error) {
	log := logging.NewStderr()

	cfg := loadConfig(log)

	// Vault directory precedence: flag/env > config > default.
	vaultPath := ""
	if args.Vault != nil && *args.Vault != "" {
		vaultPath = *args.Vault
	} else if cfg.StoragePath != "" {
		vaultPath = cfg.StoragePath
	}
	vfs, err := vaultfs.NewWithPath(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault directory: %w", err)
	}

	var cipher *vault.Cipher
	if cfg.EncryptionEnabled && !args.NoEncrypt {
		password, err := resolvePassword(args, log)
		if err != nil {
			return nil, err
		}
		salt, err := vault.LoadOrCreateSalt(vfs.SaltPath())
		if err != nil {
			return nil, fmt.Errorf("failed to set up encryption: %w", err)
		}
		cipher, err = vault.New(password, salt)
		if err != nil {
			return nil, fmt.Errorf("failed to set up encryption: %w", err)
		}
	}

	st := vaultstore.Open(vfs, vaultstore.Options{Cipher: cipher, Logger: log})
	mon := monitor.New(st, sysboard.New(), monitor.Options{
		MaxItemBytes: cfg.MaxItemBytes(),
		Logger:       log,
	})

	return &CLI{cfg: cfg, store: st, monitor: mon, log: log}, nil
}

// loadConfig reads the YAML config, falling back to defaults with a logged
// warning rather than refusing to start.
func loadConfig(log logging.Logger) *config.Config {
	manager, err := config.NewManager()
	if err != nil {
		log.Warn("failed to locate config, using defaults", "error", err)
		return config.Default()
	}
	cfg, err := manager.Load()
	if err != nil {
		log.Warn("failed to load config, using defaults", "path", manager.Path(), "error", err)
		return config.Default()
	}
	return cfg
}

// resolvePassword picks the encryption password: explicit flag or
// CLIPVAULT_PASSWORD, then an interactive prompt when requested, then the
// machine-derived default. The default is weak; choosing it logs a warning
// every time so the tradeoff is never silent.
func resolvePassword(args *Args, log logging.Logger) ([]byte, error) {
	if args.Password != nil && *args.Password != "" {
		return []byte(*args.Password), nil
	}
	if args.AskPassword {
		return readPassword("vault password: ")
	}
	log.Warn("no vault password supplied; deriving one from the machine hostname (weak, guessable)")
	return vault.DefaultPassword(), nil
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Watch != nil:
		return c.executeWatch()
	case args.History != nil:
		return c.executeHistory(args.History)
	case args.Search != nil:
		return c.executeSearch(args.Search)
	case args.Restore != nil:
		return c.executeRestore(args.Restore)
	case args.Verify != nil:
		return c.executeVerify(args.Verify)
	case args.Clear != nil:
		return c.executeClear(args.Clear)
	case args.Stats != nil:
		return c.executeStats()
	default:
		return c.launchTUI()
	}
}

// Close releases the underlying store.
func (c *CLI) Close() error {
	return c.store.Close()
}

// executeWatch runs the poller until SIGINT or SIGTERM.
func (c *CLI) executeWatch() error {
	if !c.monitor.Running() {
		c.monitor.Start()
	}
	defer c.monitor.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Println("clipvault watching the clipboard; press Ctrl+C to stop")
	<-sigCh
	fmt.Println("\nstopping")
	return nil
}

func (c *CLI) executeHistory(cmd *HistoryCmd) error {
	limit := cmd.Limit
	if limit == 0 || limit > c.cfg.MaxHistoryItems {
		limit = c.cfg.MaxHistoryItems
	}

	history := c.monitor.History(limit)
	stats := c.monitor.Stats()
	fmt.Printf("%d entries in vault (%s)\n\n", stats.TotalEntries, stats.StoragePath)
	for i, entry := range history {
		fmt.Printf("%3d  [%s]  %s\n", i, entry.DisplayTime(), oneLine(entry.Preview(80)))
	}
	return nil
}

func (c *CLI) executeSearch(cmd *SearchCmd) error {
	results := c.monitor.Search(cmd.Query)
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, result := range results {
		fmt.Printf("%3d  [%s]  %s\n", result.Index, result.Entry.DisplayTime(), oneLine(result.Entry.Preview(80)))
	}
	return nil
}

func (c *CLI) executeRestore(cmd *RestoreCmd) error {
	if !c.monitor.Restore(cmd.Index) {
		return fmt.Errorf("no restorable entry at index %d", cmd.Index)
	}
	fmt.Printf("restored entry %d to the clipboard\n", cmd.Index)
	return nil
}

// executeVerify decrypts the entry's ciphertext file and compares it with
// the index copy. A decryption failure here is surfaced, not absorbed:
// it means tampering, corruption, or a wrong password.
func (c *CLI) executeVerify(cmd *VerifyCmd) error {
	recovered, err := c.store.Recover(cmd.Index)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	entry, ok := c.store.Get(cmd.Index)
	if !ok {
		return fmt.Errorf("no entry at index %d", cmd.Index)
	}
	if recovered != entry.Content {
		return fmt.Errorf("entry %d: ciphertext decrypts but does not match the index", cmd.Index)
	}
	fmt.Printf("entry %d verified: ciphertext matches the index\n", cmd.Index)
	return nil
}

func (c *CLI) executeClear(cmd *ClearCmd) error {
	if !cmd.Force {
		fmt.Print("delete all history entries? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}
	c.monitor.ClearHistory()
	fmt.Println("history cleared")
	return nil
}

func (c *CLI) executeStats() error {
	stats := c.monitor.Stats()
	fmt.Printf("entries:    %d\n", stats.TotalEntries)
	fmt.Printf("vault:      %s\n", stats.StoragePath)
	fmt.Printf("encryption: %v\n", stats.EncryptionEnabled)
	return nil
}

func (c *CLI) launchTUI() error {
	return tui.Run(c.monitor, c.cfg.MaxHistoryItems)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}
