package models

const StorageVersion = 1

// Storage is the persisted envelope of a LogStore.
type Storage struct {
	Version int                   `json:"version"`
	Logs    map[string][]LogEntry `json:"logs"`
}
