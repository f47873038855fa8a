package orderbook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hliosone/Permix/internal/txbuilder"
)

// Cache keeps classified book snapshots in Redis for a short TTL so bursts
// of readers do not hammer the ledger node. A nil Cache is a no-op: the
// authoritative book always comes from the ledger, the cache only bounds
// staleness.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func key(pair txbuilder.TradingPair) string {
	return fmt.Sprintf("permix:book:%s.%s/%s.%s",
		pair.Base.Code, pair.Base.Issuer, pair.Quote.Code, pair.Quote.Issuer)
}

// Get returns the cached snapshot for pair, or ok=false on miss. Cache
// errors degrade to a miss; the caller falls through to the ledger.
func (c *Cache) Get(ctx context.Context, pair txbuilder.TradingPair) (Book, bool) {
	if c == nil {
		return Book{}, false
	}
	raw, err := c.client.Get(ctx, key(pair)).Bytes()
	if err != nil {
		return Book{}, false
	}
	var book Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return Book{}, false
	}
	return book, true
}

// Put stores a snapshot with the configured TTL.
func (c *Cache) Put(ctx context.Context, pair txbuilder.TradingPair, book Book) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(pair), raw, c.ttl).Err()
}
