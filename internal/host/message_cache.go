package host

import (
	"fmt"
	"nodelete/internal/models"
	"nodelete/internal/providers"
	"nodelete/internal/structures"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
)

const minMessageCacheSize = 1

// MessageCache holds recently seen messages the way the chat client does:
// bounded, with older entries evicted when space runs out.
type MessageCache struct {
	cache  *freecache.Cache
	ttl    int
	logger providers.Logger
}

func NewMessageCache(conf *structures.Config, logger providers.Logger) *MessageCache {
	size := max(conf.Host.MessageCacheSize, minMessageCacheSize)
	ttl := 0
	if conf.Host.MessageTTL > 0 {
		ttl = max(int(conf.Host.MessageTTL.Seconds()), 1)
	}

	logger.Infof(providers.TypeApp, "Message cache initialized: %dMB, TTL=%ds", size, ttl)

	return &MessageCache{
		cache:  freecache.NewCache(size * 1024 * 1024),
		ttl:    ttl,
		logger: logger,
	}
}

func messageKey(channelID, messageID string) []byte {
	return []byte(channelID + ":" + messageID)
}

// Put stores msg under its resolved channel id, replacing any previous copy.
func (c *MessageCache) Put(msg *models.Message) error {
	channelID := models.ResolveChannelID(msg)
	if channelID == "" || msg.ID == "" {
		return fmt.Errorf("cache message: %w", ErrMalformedEvent)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.ID, err)
	}
	if err = c.cache.Set(messageKey(channelID, msg.ID), data, c.ttl); err != nil {
		return fmt.Errorf("cache message %s: %w", msg.ID, err)
	}
	return nil
}

func (c *MessageCache) Evict(channelID, messageID string) bool {
	return c.cache.Del(messageKey(channelID, messageID))
}

func (c *MessageCache) GetMessage(channelID, messageID string) (models.MessageFields, bool) {
	data, err := c.cache.Get(messageKey(channelID, messageID))
	if err != nil {
		return nil, false
	}
	var msg models.Message
	if err = json.Unmarshal(data, &msg); err != nil {
		c.logger.Warnf(providers.TypeEvent, "Dropping unreadable cached message %s: %s", messageID, err)
		c.cache.Del(messageKey(channelID, messageID))
		return nil, false
	}
	return &msg, true
}

func (c *MessageCache) Count() int64 {
	return c.cache.EntryCount()
}
