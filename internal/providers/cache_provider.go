package providers

import (
	"errors"
	"github.com/coocood/freecache"
	"repopulse/internal/structures"
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// CacheProvider keeps GitHub responses that cannot change anymore (commit
// listings of past months, per-commit stats) and rendered status payloads.
// Every lookup is counted as a hit or a miss.
type CacheProvider struct {
	cache   *freecache.Cache
	size    int
	ttl     int
	logger  Logger
	metrics MetricsProviderInterface
}

func NewCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	// 0 means entries only leave the cache on eviction.
	ttl := max(int(conf.Cache.TTL.Seconds()), 0)
	logger.Infof(TypeApp, "Cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	size := conf.Cache.Size * 1024 * 1024
	return &CacheProvider{
		cache:   freecache.NewCache(size),
		size:    size,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	err := c.cache.Set([]byte(key), value, c.ttl)
	if errors.Is(err, freecache.ErrLargeEntry) || errors.Is(err, freecache.ErrLargeKey) {
		c.logger.Warnf(TypeApp, "Cache entry %s skipped: %d bytes exceeds the per-entry limit of a %d byte cache", key, len(value), c.size)
	}
}

// EntryCount reports the number of live entries.
func (c *CacheProvider) EntryCount() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
