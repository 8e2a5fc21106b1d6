package testutil

import (
	"fmt"
	"nodelete/internal/models"
	"nodelete/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Messages returns the formatted messages logged at level.
func (m *MockLogger) Messages(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, l := range m.Logs {
		if l.Level == level {
			out = append(out, fmt.Sprintf(l.Format, l.Args...))
		}
	}
	return out
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	Appended          map[string]int
	LookupMisses      map[string]int
	Clears            int
	PersistenceCalls  int
	CacheHits         int
	CacheMisses       int
	RequestsByPattern map[string]int
}

func (m *MockMetrics) inc(target *map[string]int, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if *target == nil {
		*target = make(map[string]int)
	}
	(*target)[key]++
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, _ int) {
	m.inc(&m.RequestsByPattern, endpoint)
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncEntriesAppended(kind string) { m.inc(&m.Appended, kind) }
func (m *MockMetrics) IncLookupMisses(kind string)    { m.inc(&m.LookupMisses, kind) }
func (m *MockMetrics) IncLogClears() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockLookup implements services.MessageLookup over a fixed map keyed
// "channelID:messageID".
type MockLookup struct {
	mu       sync.Mutex
	Messages map[string]*models.Message
	Calls    []string
}

func (m *MockLookup) Put(msg *models.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Messages == nil {
		m.Messages = make(map[string]*models.Message)
	}
	m.Messages[models.ResolveChannelID(msg)+":"+msg.ID] = msg
}

func (m *MockLookup) GetMessage(channelID, messageID string) (models.MessageFields, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := channelID + ":" + messageID
	m.Calls = append(m.Calls, key)
	msg, ok := m.Messages[key]
	if !ok {
		return nil, false
	}
	return msg, true
}

// MockBus implements services.NotificationBus and keeps live subscriptions.
type MockBus struct {
	mu       sync.Mutex
	nextID   models.SubscriptionID
	Handlers map[string]map[models.SubscriptionID]models.Handler
}

func (m *MockBus) Subscribe(eventType string, h models.Handler) models.SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Handlers == nil {
		m.Handlers = make(map[string]map[models.SubscriptionID]models.Handler)
	}
	if m.Handlers[eventType] == nil {
		m.Handlers[eventType] = make(map[models.SubscriptionID]models.Handler)
	}
	m.nextID++
	m.Handlers[eventType][m.nextID] = h
	return m.nextID
}

func (m *MockBus) Unsubscribe(eventType string, id models.SubscriptionID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Handlers[eventType][id]; !ok {
		return false
	}
	delete(m.Handlers[eventType], id)
	return true
}

// Active counts live subscriptions across all event types.
func (m *MockBus) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, hs := range m.Handlers {
		n += len(hs)
	}
	return n
}

// Emit calls every handler subscribed to e.Type.
func (m *MockBus) Emit(e models.Event) {
	m.mu.Lock()
	handlers := make([]models.Handler, 0, len(m.Handlers[e.Type]))
	for _, h := range m.Handlers[e.Type] {
		handlers = append(handlers, h)
	}
	m.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

// MockMenuHook implements services.MenuHook.
type MockMenuHook struct {
	mu          sync.Mutex
	nextToken   models.MenuToken
	Middlewares map[models.MenuToken]models.MenuMiddleware
}

func (m *MockMenuHook) Use(mw models.MenuMiddleware) models.MenuToken {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Middlewares == nil {
		m.Middlewares = make(map[models.MenuToken]models.MenuMiddleware)
	}
	m.nextToken++
	m.Middlewares[m.nextToken] = mw
	return m.nextToken
}

func (m *MockMenuHook) Remove(token models.MenuToken) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Middlewares[token]; !ok {
		return false
	}
	delete(m.Middlewares, token)
	return true
}

func (m *MockMenuHook) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Middlewares)
}

// MockToaster implements services.Toaster.
type MockToaster struct {
	mu     sync.Mutex
	Toasts []string
}

func (m *MockToaster) ShowToast(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Toasts = append(m.Toasts, text)
}
