package models

import (
	json "github.com/goccy/go-json"
)

type EntryType string

const (
	EntryDelete EntryType = "delete"
	EntryEdit   EntryType = "edit"
)

// LogEntry is one line of a channel log. Delete entries use Message,
// edit entries use Before (nil when the prior state was not cached) and After.
type LogEntry struct {
	Type      EntryType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Message   *Snapshot `json:"message,omitempty"`
	Before    *Snapshot `json:"before,omitempty"`
	After     *Snapshot `json:"after,omitempty"`
}

func NewDeleteEntry(timestamp int64, message *Snapshot) LogEntry {
	return LogEntry{Type: EntryDelete, Timestamp: timestamp, Message: message}
}

func NewEditEntry(timestamp int64, before, after *Snapshot) LogEntry {
	return LogEntry{Type: EntryEdit, Timestamp: timestamp, Before: before, After: after}
}

// MarshalJSON writes only the fields of the entry's variant; an edit always
// carries "before", as null when unknown.
func (e LogEntry) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EntryEdit:
		return json.Marshal(struct {
			Type      EntryType `json:"type"`
			Timestamp int64     `json:"timestamp"`
			Before    *Snapshot `json:"before"`
			After     *Snapshot `json:"after"`
		}{e.Type, e.Timestamp, e.Before, e.After})
	default:
		return json.Marshal(struct {
			Type      EntryType `json:"type"`
			Timestamp int64     `json:"timestamp"`
			Message   *Snapshot `json:"message"`
		}{e.Type, e.Timestamp, e.Message})
	}
}
