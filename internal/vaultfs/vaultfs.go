// Package vaultfs resolves the on-disk layout of a vault directory: the
// plaintext index, the key-derivation salt, and the per-entry ciphertext
// files all live under a single root.
package vaultfs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDir is the tool's directory under the user's home.
	ConfigDir = ".config/clipvault"

	// DefaultVaultDir is the default vault directory name under ConfigDir.
	DefaultVaultDir = "vault"

	// IndexFile holds the full ordered entry list as plaintext JSON.
	IndexFile = "index.json"

	// SaltFile holds the 16 random bytes used for key derivation. It is
	// created once and never rotated; losing it makes every ciphertext
	// file in the vault permanently undecryptable.
	SaltFile = ".vault_salt"

	// CipherSuffix is the extension of per-entry ciphertext files.
	CipherSuffix = ".vault"
)

// VaultFS is a filesystem view rooted at one vault directory.
type VaultFS struct {
	root string
}

// New creates a VaultFS rooted at the default ~/.config/clipvault/vault/.
func New() (*VaultFS, error) {
	return NewWithPath("")
}

// NewWithPath creates a VaultFS with a custom vault location.
// If path is empty, the default ~/.config/clipvault/vault/ is used.
// If path is absolute, it is used directly as the vault directory.
// If path is relative, it is treated as a subdirectory of ~/.config/clipvault/.
func NewWithPath(path string) (*VaultFS, error) {
	var root string

	if path == "" || !filepath.IsAbs(path) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		if path == "" {
			path = DefaultVaultDir
		}
		root = filepath.Join(homeDir, ConfigDir, path)
	} else {
		root = path
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	return &VaultFS{root: root}, nil
}

// Root returns the vault directory path.
func (v *VaultFS) Root() string {
	return v.root
}

// IndexPath returns the path of the index file.
func (v *VaultFS) IndexPath() string {
	return filepath.Join(v.root, IndexFile)
}

// SaltPath returns the path of the salt file.
func (v *VaultFS) SaltPath() string {
	return filepath.Join(v.root, SaltFile)
}

// CipherPath returns the ciphertext file path for an entry captured at the
// given wall-clock timestamp (seconds). The name is the timestamp truncated
// to an integer, so two entries captured within the same second share a
// name and the later write wins.
func (v *VaultFS) CipherPath(timestamp float64) string {
	return filepath.Join(v.root, fmt.Sprintf("%d%s", int64(timestamp), CipherSuffix))
}
