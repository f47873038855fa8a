//go:build integration

package orderbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hliosone/Permix/internal/orderbook"
	"github.com/hliosone/Permix/internal/txbuilder"
	"github.com/hliosone/Permix/pkg/testutil/containers"
)

func testPair() txbuilder.TradingPair {
	return txbuilder.TradingPair{
		Base:  txbuilder.CurrencyRef{Code: "GLD", Issuer: "rIssuer"},
		Quote: txbuilder.CurrencyRef{Code: "XRP"},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	cache := orderbook.NewCache(rc.Client, time.Minute)
	pair := testPair()

	_, ok := cache.Get(ctx, pair)
	assert.False(t, ok, "empty cache must miss")

	book := orderbook.Book{
		Asks: []orderbook.PricedOrder{{Account: "rMaker", Price: 2, Amount: 5, Sequence: 7}},
		Bids: []orderbook.PricedOrder{{Account: "rTaker", Price: 1.5, Amount: 3, Sequence: 9}},
	}
	require.NoError(t, cache.Put(ctx, pair, book))

	got, ok := cache.Get(ctx, pair)
	require.True(t, ok)
	assert.Equal(t, book, got)
}

func TestCacheExpiry(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	cache := orderbook.NewCache(rc.Client, 200*time.Millisecond)
	pair := testPair()

	require.NoError(t, cache.Put(ctx, pair, orderbook.Book{
		Asks: []orderbook.PricedOrder{{Price: 2, Amount: 5}},
	}))

	_, ok := cache.Get(ctx, pair)
	require.True(t, ok)

	time.Sleep(400 * time.Millisecond)

	_, ok = cache.Get(ctx, pair)
	assert.False(t, ok, "entry must expire after the TTL")
}

func TestCachePairsDoNotCollide(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	cache := orderbook.NewCache(rc.Client, time.Minute)

	gold := testPair()
	silver := txbuilder.TradingPair{
		Base:  txbuilder.CurrencyRef{Code: "SLV", Issuer: "rIssuer"},
		Quote: txbuilder.CurrencyRef{Code: "XRP"},
	}

	require.NoError(t, cache.Put(ctx, gold, orderbook.Book{
		Asks: []orderbook.PricedOrder{{Price: 2, Amount: 5}},
	}))

	_, ok := cache.Get(ctx, silver)
	assert.False(t, ok, "a different pair must not hit the gold snapshot")
}
