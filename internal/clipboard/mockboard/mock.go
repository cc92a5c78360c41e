// Package mockboard provides a mock clipboard implementation for testing.
// Content can be set directly and read/write failures can be injected to
// exercise the poller's error handling.
package mockboard

import "sync"

// MockClipboard implements clipboard.Clipboard for testing. It is safe for
// concurrent use: the poller goroutine reads it while tests mutate it.
type MockClipboard struct {
	mu       sync.Mutex
	content  string
	readErr  error
	writeErr error
}

// New creates a new MockClipboard instance.
func New() *MockClipboard {
	return &MockClipboard{}
}

// Read implements clipboard.Clipboard.
func (m *MockClipboard) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.content, nil
}

// Write implements clipboard.Clipboard.
func (m *MockClipboard) Write(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.content = content
	return nil
}

// IsSupported always returns true for the mock clipboard.
func (m *MockClipboard) IsSupported() bool {
	return true
}

// SetContent sets the clipboard content directly.
func (m *MockClipboard) SetContent(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
}

// Content returns the current clipboard content.
func (m *MockClipboard) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// FailReads makes every Read return err until called with nil.
func (m *MockClipboard) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every Write return err until called with nil.
func (m *MockClipboard) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}
