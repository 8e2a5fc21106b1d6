package models

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// ChannelLog is the append-only history of one channel.
type ChannelLog struct {
	mu      sync.Mutex
	entries []LogEntry
	owner   *LogStore
}

func newChannelLog(owner *LogStore, entries []LogEntry) *ChannelLog {
	if entries == nil {
		entries = make([]LogEntry, 0)
	}
	return &ChannelLog{entries: entries, owner: owner}
}

func (l *ChannelLog) Append(entry LogEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	if l.owner != nil {
		l.owner.touch()
	}
}

func (l *ChannelLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the log in append order.
func (l *ChannelLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// LogStore maps channel ids to their logs. The mapping stays nil until Init
// or the first EnsureLog, so a restored mapping is never overwritten.
type LogStore struct {
	mu       sync.RWMutex
	logs     map[string]*ChannelLog
	dirty    atomic.Bool
	revision atomic.Uint64
}

func NewLogStore() *LogStore {
	return &LogStore{}
}

// Init adopts persisted as the store contents, or an empty mapping when nil.
// Only the first call has an effect; it reports whether it did.
func (s *LogStore) Init(persisted map[string][]LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(persisted)
}

func (s *LogStore) initLocked(persisted map[string][]LogEntry) bool {
	if s.logs != nil {
		return false
	}
	s.logs = make(map[string]*ChannelLog, len(persisted))
	for channelID, entries := range persisted {
		s.logs[channelID] = newChannelLog(s, entries)
	}
	return true
}

func (s *LogStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs != nil
}

// EnsureLog returns the channel's log, creating an empty one on first use.
// The returned handle is live: appends through it land in the store.
func (s *LogStore) EnsureLog(channelID string) *ChannelLog {
	s.mu.RLock()
	l, ok := s.logs[channelID]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked(nil)
	if l, ok = s.logs[channelID]; ok {
		return l
	}
	l = newChannelLog(s, nil)
	s.logs[channelID] = l
	return l
}

func (s *LogStore) Append(channelID string, entry LogEntry) {
	s.EnsureLog(channelID).Append(entry)
}

// Clear swaps the channel's log for a fresh empty one. Handles obtained
// before the call keep pointing at the discarded log.
func (s *LogStore) Clear(channelID string) {
	s.mu.Lock()
	s.initLocked(nil)
	s.logs[channelID] = newChannelLog(s, nil)
	s.mu.Unlock()
	s.touch()
}

// Entries returns a copy of the channel's log without creating it.
func (s *LogStore) Entries(channelID string) []LogEntry {
	s.mu.RLock()
	l, ok := s.logs[channelID]
	s.mu.RUnlock()
	if !ok {
		return []LogEntry{}
	}
	return l.Entries()
}

func (s *LogStore) Len(channelID string) int {
	s.mu.RLock()
	l, ok := s.logs[channelID]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return l.Len()
}

// Channels lists channel ids that have a log, sorted.
func (s *LogStore) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.logs))
	for id := range s.logs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *LogStore) ChannelCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

func (s *LogStore) EntriesTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, l := range s.logs {
		total += l.Len()
	}
	return total
}

// Snapshot copies every channel log for persistence.
func (s *LogStore) Snapshot() map[string][]LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]LogEntry, len(s.logs))
	for id, l := range s.logs {
		out[id] = l.Entries()
	}
	return out
}

// Revision changes on every mutation of any log.
func (s *LogStore) Revision() uint64 {
	return s.revision.Load()
}

func (s *LogStore) Dirty() bool {
	return s.dirty.Load()
}

func (s *LogStore) MarkClean() {
	s.dirty.Store(false)
}

func (s *LogStore) MarkDirty() {
	s.dirty.Store(true)
}

func (s *LogStore) touch() {
	s.revision.Inc()
	s.dirty.Store(true)
}
