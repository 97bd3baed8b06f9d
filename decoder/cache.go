package decoder

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/blockdecoder/model"
	"github.com/jellydator/ttlcache/v3"
)

// blockCache keeps recently decoded blocks by header hash. Entries are shared,
// callers must treat cached blocks as read only.
type blockCache struct {
	ttlCache *ttlcache.Cache[model.Hash256, *model.Block]
	stopOnce sync.Once
}

func newBlockCache(ttl time.Duration, capacity int) *blockCache {
	opts := []ttlcache.Option[model.Hash256, *model.Block]{
		ttlcache.WithTTL[model.Hash256, *model.Block](ttl),
		ttlcache.WithDisableTouchOnHit[model.Hash256, *model.Block](),
	}

	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[model.Hash256, *model.Block](uint64(capacity)))
	}

	c := &blockCache{
		ttlCache: ttlcache.New[model.Hash256, *model.Block](opts...),
	}

	// insertion fires once per new key, re-setting an existing or expired key is an update
	c.ttlCache.OnInsertion(func(_ context.Context, _ *ttlcache.Item[model.Hash256, *model.Block]) {
		prometheusDecoderCachedBlocks.Inc()
	})

	c.ttlCache.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, _ *ttlcache.Item[model.Hash256, *model.Block]) {
		prometheusDecoderCachedBlocks.Dec()
	})

	go c.ttlCache.Start()

	return c
}

func (c *blockCache) set(block *model.Block) {
	c.ttlCache.Set(block.Hash(), block, ttlcache.DefaultTTL)
}

func (c *blockCache) get(hash model.Hash256) (*model.Block, bool) {
	item := c.ttlCache.Get(hash)
	if item == nil {
		return nil, false
	}

	return item.Value(), true
}

func (c *blockCache) stop() {
	c.stopOnce.Do(c.ttlCache.Stop)
}
