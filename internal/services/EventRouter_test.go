package services

import (
	"fmt"
	"nodelete/internal/models"
	"nodelete/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func newTestRouter(lookup MessageLookup) (*EventRouter, *models.LogStore, *testutil.MockMetrics) {
	store := models.NewLogStore()
	metrics := &testutil.MockMetrics{}
	r := NewEventRouter(store, lookup, metrics, &testutil.MockLogger{})
	r.now = func() time.Time { return fixedNow }
	return r, store, metrics
}

func TestEventRouter_DeleteWithCachedMessage(t *testing.T) {
	lookup := &testutil.MockLookup{}
	lookup.Put(&models.Message{
		ID: "m1", ChannelID: "c1", Author: "u1", Content: "hi",
		Embeds: []any{}, Attachments: []any{}, Timestamp: 1000,
	})
	r, store, metrics := newTestRouter(lookup)

	r.HandleDelete(models.Event{Type: models.EventMessageDelete, ChannelID: "c1", ID: "m1"})

	entries := store.Entries("c1")
	require.Len(t, entries, 1)
	assert.Equal(t, models.LogEntry{
		Type:      models.EntryDelete,
		Timestamp: fixedNow.UnixMilli(),
		Message: &models.Snapshot{
			ID: "m1", ChannelID: "c1", Author: "u1", Content: "hi",
			Embeds: []any{}, Attachments: []any{}, Timestamp: 1000,
		},
	}, entries[0])
	assert.Equal(t, 1, metrics.Appended["delete"])
	assert.Zero(t, metrics.LookupMisses["delete"])
	assert.Equal(t, []string{"c1:m1"}, lookup.Calls)
}

func TestEventRouter_DeleteFallsBackOnMiss(t *testing.T) {
	r, store, metrics := newTestRouter(&testutil.MockLookup{})

	r.HandleDelete(models.Event{Type: models.EventMessageDelete, ChannelID: "c1", ID: "m1"})

	entries := store.Entries("c1")
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryDelete, entries[0].Type)
	assert.Equal(t, &models.Snapshot{ID: "m1", ChannelID: "c1"}, entries[0].Message)
	assert.Nil(t, entries[0].Before)
	assert.Nil(t, entries[0].After)
	assert.Equal(t, 1, metrics.LookupMisses["delete"])
}

func TestEventRouter_DeleteWithoutLookup(t *testing.T) {
	r, store, _ := newTestRouter(nil)

	assert.NotPanics(t, func() {
		r.HandleDelete(models.Event{Type: models.EventMessageDelete, ChannelID: "c1", ID: "m1"})
	})
	assert.Equal(t, &models.Snapshot{ID: "m1", ChannelID: "c1"}, store.Entries("c1")[0].Message)
}

func TestEventRouter_UpdateRecordsBeforeAndAfter(t *testing.T) {
	lookup := &testutil.MockLookup{}
	lookup.Put(&models.Message{ID: "m2", ChannelID: "c2", Content: "old"})
	r, store, metrics := newTestRouter(lookup)

	r.HandleUpdate(models.Event{
		Type:    models.EventMessageUpdate,
		Message: &models.Message{ID: "m2", ChannelID: "c2", Content: "new"},
	})

	entries := store.Entries("c2")
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryEdit, entries[0].Type)
	assert.Equal(t, fixedNow.UnixMilli(), entries[0].Timestamp)
	assert.Equal(t, "old", entries[0].Before.Content)
	assert.Equal(t, "new", entries[0].After.Content)
	assert.Nil(t, entries[0].Message)
	assert.Equal(t, 1, metrics.Appended["edit"])
}

func TestEventRouter_UpdateWithoutCachedBefore(t *testing.T) {
	r, store, metrics := newTestRouter(&testutil.MockLookup{})

	r.HandleUpdate(models.Event{
		Type:    models.EventMessageUpdate,
		Message: &models.Message{ID: "m2", ChannelID: "c2", Content: "new"},
	})

	entries := store.Entries("c2")
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Before)
	require.NotNil(t, entries[0].After)
	assert.Equal(t, "new", entries[0].After.Content)
	assert.Equal(t, 1, metrics.LookupMisses["edit"])
}

func TestEventRouter_UpdateResolvesAliasChannel(t *testing.T) {
	lookup := &testutil.MockLookup{}
	r, store, _ := newTestRouter(lookup)

	r.HandleUpdate(models.Event{
		Type:    models.EventMessageUpdate,
		Message: &models.Message{ID: "m3", ChannelIDAlias: "c3", Content: "x"},
	})

	assert.Equal(t, 1, store.Len("c3"))
	assert.Equal(t, []string{"c3:m3"}, lookup.Calls)
	assert.Equal(t, "c3", store.Entries("c3")[0].After.ChannelID)
}

func TestEventRouter_UpdateAfterCacheRefreshKeepsSameContent(t *testing.T) {
	lookup := &testutil.MockLookup{}
	lookup.Put(&models.Message{ID: "m2", ChannelID: "c2", Content: "new"})
	r, store, _ := newTestRouter(lookup)

	r.HandleUpdate(models.Event{
		Type:    models.EventMessageUpdate,
		Message: &models.Message{ID: "m2", ChannelID: "c2", Content: "new"},
	})

	entry := store.Entries("c2")[0]
	assert.Equal(t, entry.Before, entry.After)
}

func TestEventRouter_UpdateWithoutMessageIsSkipped(t *testing.T) {
	r, store, metrics := newTestRouter(&testutil.MockLookup{})

	r.HandleUpdate(models.Event{Type: models.EventMessageUpdate})

	assert.Empty(t, store.Channels())
	assert.Zero(t, metrics.Appended["edit"])
}

func TestEventRouter_OneEntryPerNotification(t *testing.T) {
	lookup := &testutil.MockLookup{}
	lookup.Put(&models.Message{ID: "m1", ChannelID: "c1", Content: "a"})
	r, store, _ := newTestRouter(lookup)

	const n = 25
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			r.HandleDelete(models.Event{Type: models.EventMessageDelete, ChannelID: "c1", ID: "m1"})
		} else {
			r.HandleUpdate(models.Event{
				Type:    models.EventMessageUpdate,
				Message: &models.Message{ID: "m1", ChannelID: "c1", Content: fmt.Sprint(i)},
			})
		}
	}

	entries := store.Entries("c1")
	require.Len(t, entries, n)
	for i, e := range entries {
		if i%2 == 0 {
			assert.Equal(t, models.EntryDelete, e.Type)
		} else {
			assert.Equal(t, models.EntryEdit, e.Type)
			assert.Equal(t, fmt.Sprint(i), e.After.Content)
		}
	}
}
