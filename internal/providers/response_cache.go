package providers

import (
	"nodelete/internal/structures"
	"strconv"
	"time"

	"github.com/coocood/freecache"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// ResponseKey names a rendered response at a store revision. Every mutation
// bumps the revision, so keys of older revisions are simply never asked for.
func ResponseKey(kind string, revision uint64, channelID string) string {
	return kind + ":" + strconv.FormatUint(revision, 10) + ":" + channelID
}

// ResponseCache keeps rendered JSON bodies in freecache and reports each
// lookup as a hit or a miss.
type ResponseCache struct {
	bodies  *freecache.Cache
	ttl     int
	metrics MetricsProviderInterface
	logger  Logger
}

// NewResponseCache returns a disabled cache when caching is off, so reads
// are not counted as misses.
func NewResponseCache(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return disabledCache{}
	}

	ttl := ttlSeconds(conf.Cache.TTL)
	logger.Infof(TypeApp, "Response cache: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &ResponseCache{
		bodies:  freecache.NewCache(conf.Cache.Size << 20),
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// ttlSeconds rounds down to whole seconds; freecache treats 0 as no expiry.
func ttlSeconds(d time.Duration) int {
	if s := int(d / time.Second); s > 0 {
		return s
	}
	return 1
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	body, err := c.bodies.Get([]byte(key))
	if err != nil {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return body, true
}

func (c *ResponseCache) Set(key string, value []byte) {
	if err := c.bodies.Set([]byte(key), value, c.ttl); err != nil {
		c.logger.Debugf(TypeGet, "Response %s not cached: %s", key, err)
	}
}

type disabledCache struct{}

func (disabledCache) Get(string) ([]byte, bool) { return nil, false }
func (disabledCache) Set(string, []byte)        {}
