// Package nodecache memoizes ledger.Client.NodeInfo lookups for a
// short TTL, so repeated NodeInfo calls within that window share one
// round trip to the node.
package nodecache

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/hub/ledger"
	"github.com/bitmark-inc/hub/tangle"
)

const nodeInfoKey = "node-info"

// Cache wraps a ledger.Client, serving NodeInfo from a short-lived
// in-memory cache and delegating everything else untouched.
type Cache struct {
	ledger.Client
	cache *cache.Cache
}

// New wraps client with a TTL cache of the given expiration, cleaned
// up every cleanupInterval.
func New(client ledger.Client, expiration time.Duration, cleanupInterval time.Duration) *Cache {
	return &Cache{
		Client: client,
		cache:  cache.New(expiration, cleanupInterval),
	}
}

// NodeInfo overrides the embedded client's method, serving from cache
// when a fresh entry exists.
func (c *Cache) NodeInfo(ctx context.Context) (tangle.NodeInfo, error) {
	if cached, found := c.cache.Get(nodeInfoKey); found {
		return cached.(tangle.NodeInfo), nil
	}

	info, err := c.Client.NodeInfo(ctx)
	if nil != err {
		return info, err
	}
	c.cache.SetDefault(nodeInfoKey, info)
	return info, nil
}

var _ ledger.Client = (*Cache)(nil)
