package store

import (
	"strings"
	"testing"
	"time"
)

func TestNewEntryDefaults(t *testing.T) {
	before := float64(time.Now().UnixNano()) / 1e9
	e := NewEntry("hello", TypeText, nil)
	after := float64(time.Now().UnixNano()) / 1e9

	if e.Content != "hello" {
		t.Errorf("Content = %q, want %q", e.Content, "hello")
	}
	if e.EntryType != TypeText {
		t.Errorf("EntryType = %q, want %q", e.EntryType, TypeText)
	}
	if e.Metadata == nil {
		t.Error("Metadata should never be nil")
	}
	if e.Timestamp < before || e.Timestamp > after {
		t.Errorf("Timestamp %f outside [%f, %f]", e.Timestamp, before, after)
	}
}

func TestNewEntryKeepsMetadata(t *testing.T) {
	meta := map[string]any{"source": "test", "pinned": true}
	e := NewEntry("x", TypeText, meta)
	if e.Metadata["source"] != "test" || e.Metadata["pinned"] != true {
		t.Errorf("Metadata = %v, want %v", e.Metadata, meta)
	}
}

func TestEntryTime(t *testing.T) {
	e := &Entry{Timestamp: 1700000000.5}
	got := e.Time()
	if got.Unix() != 1700000000 {
		t.Errorf("Time().Unix() = %d, want 1700000000", got.Unix())
	}
	if got.Nanosecond() < 400_000_000 || got.Nanosecond() > 600_000_000 {
		t.Errorf("fractional seconds lost: nsec = %d", got.Nanosecond())
	}
}

func TestPreviewTruncation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"unicode", "日本語のテキスト", 3, "日本語..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Content: tt.content, EntryType: TypeText}
			if got := e.Preview(tt.max); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}

func TestPreviewNonText(t *testing.T) {
	e := &Entry{Content: "ignored", EntryType: TypeOther}
	if got := e.Preview(100); got != "[other]" {
		t.Errorf("Preview() = %q, want [other]", got)
	}
}

func TestDisplayTime(t *testing.T) {
	e := NewEntry("x", TypeText, nil)
	got := e.DisplayTime()
	if !strings.Contains(got, "-") || !strings.Contains(got, ":") {
		t.Errorf("DisplayTime() = %q, not in expected format", got)
	}
}
