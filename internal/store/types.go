package store

import (
	"time"
)

// EntryType discriminates entry content. Only text entries are encrypted,
// previewed, and searchable; anything else carries an opaque tag and a
// placeholder content string.
type EntryType string

const (
	// TypeText is a plain text clipboard snapshot.
	TypeText EntryType = "text"

	// TypeOther tags content the vault does not interpret.
	TypeOther EntryType = "other"
)

// Entry is one captured clipboard snapshot. Entries are immutable after
// creation: they are built exactly once by a store when a qualifying
// clipboard change is observed and destroyed only by explicit removal or a
// full history clear.
type Entry struct {
	// Content is the text payload, or a tagged placeholder for non-text
	// types.
	Content string `json:"content"`

	// Timestamp is the capture instant as wall-clock seconds. Wall-clock,
	// so monotonicity across clock changes is not guaranteed.
	Timestamp float64 `json:"timestamp"`

	// EntryType discriminates how Content is treated.
	EntryType EntryType `json:"entry_type"`

	// Metadata is an open string-to-scalar mapping attached at creation
	// and never mutated afterwards.
	Metadata map[string]any `json:"metadata"`
}

// NewEntry builds an entry stamped with the current wall-clock time.
func NewEntry(content string, entryType EntryType, metadata map[string]any) *Entry {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Entry{
		Content:   content,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		EntryType: entryType,
		Metadata:  metadata,
	}
}

// Time returns the capture instant as a time.Time.
func (e *Entry) Time() time.Time {
	sec := int64(e.Timestamp)
	nsec := int64((e.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// DisplayTime formats the capture instant for listings.
func (e *Entry) DisplayTime() string {
	return e.Time().Format("2006-01-02 15:04:05")
}

// Preview returns at most max characters of a text entry's content, with an
// ellipsis when truncated. Non-text entries preview as their type tag.
func (e *Entry) Preview(max int) string {
	if e.EntryType != TypeText {
		return "[" + string(e.EntryType) + "]"
	}
	runes := []rune(e.Content)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return e.Content
}
