// Package clipboard defines the narrow interface through which the vault
// observes and writes the live system clipboard. The core depends on
// nothing else about the platform clipboard.
package clipboard

// Clipboard reads and writes the live system clipboard as text.
type Clipboard interface {
	// Read returns the current clipboard content.
	Read() (string, error)

	// Write replaces the clipboard content.
	Write(content string) error

	// IsSupported reports whether clipboard operations work on this
	// system.
	IsSupported() bool
}
