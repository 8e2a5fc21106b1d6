package host

import (
	"nodelete/internal/models"
	"nodelete/internal/structures"
	"nodelete/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *MessageCache {
	conf := &structures.Config{Host: structures.HostConfig{MessageCacheSize: 1, MessageTTL: time.Hour}}
	return NewMessageCache(conf, &testutil.MockLogger{})
}

func TestMessageCache_PutGet(t *testing.T) {
	c := newTestCache()
	require.NoError(t, c.Put(&models.Message{ID: "m1", ChannelID: "c1", Content: "hi", Author: "u1"}))

	got, ok := c.GetMessage("c1", "m1")
	require.True(t, ok)
	assert.Equal(t, "hi", got.MessageContent())
	assert.Equal(t, "u1", got.MessageAuthor())
	assert.Equal(t, "c1", models.ResolveChannelID(got))
	assert.EqualValues(t, 1, c.Count())
}

func TestMessageCache_AliasChannel(t *testing.T) {
	c := newTestCache()
	require.NoError(t, c.Put(&models.Message{ID: "m1", ChannelIDAlias: "c9"}))

	_, ok := c.GetMessage("c9", "m1")
	assert.True(t, ok)
}

func TestMessageCache_Miss(t *testing.T) {
	c := newTestCache()
	got, ok := c.GetMessage("c1", "nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMessageCache_ReplaceAndEvict(t *testing.T) {
	c := newTestCache()
	require.NoError(t, c.Put(&models.Message{ID: "m1", ChannelID: "c1", Content: "old"}))
	require.NoError(t, c.Put(&models.Message{ID: "m1", ChannelID: "c1", Content: "new"}))

	got, ok := c.GetMessage("c1", "m1")
	require.True(t, ok)
	assert.Equal(t, "new", got.MessageContent())

	assert.True(t, c.Evict("c1", "m1"))
	assert.False(t, c.Evict("c1", "m1"))
	_, ok = c.GetMessage("c1", "m1")
	assert.False(t, ok)
}

func TestMessageCache_RejectsMessageWithoutChannel(t *testing.T) {
	c := newTestCache()
	assert.ErrorIs(t, c.Put(&models.Message{ID: "m1"}), ErrMalformedEvent)
}

func TestMessageCache_MinimumSize(t *testing.T) {
	c := NewMessageCache(&structures.Config{}, &testutil.MockLogger{})
	require.NoError(t, c.Put(&models.Message{ID: "m1", ChannelID: "c1"}))
	_, ok := c.GetMessage("c1", "m1")
	assert.True(t, ok)
}
