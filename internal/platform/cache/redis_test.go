package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwaqasali/garage_invoice_app/internal/platform/cache"
)

type payload struct {
	Names []string `json:"names"`
	Total int64    `json:"total"`
}

func newTestCache(t *testing.T) (*cache.RedisListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewRedisListCache(client, time.Minute, nil), mr
}

func TestGetMissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := cache.ListKey("ali", 1, 20)

	var got payload
	ver, ok := c.Get(ctx, cache.Customers, key, &got)
	assert.False(t, ok)

	c.Set(ctx, cache.Customers, key, ver, payload{Names: []string{"Ali Motors"}, Total: 1})

	_, ok = c.Get(ctx, cache.Customers, key, &got)
	require.True(t, ok)
	assert.Equal(t, []string{"Ali Motors"}, got.Names)
	assert.Equal(t, int64(1), got.Total)
}

func TestInvalidateOrphansAllPages(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got payload
	ver, _ := c.Get(ctx, cache.Documents, cache.ListKey("", 1, 20, "INVOICE"), &got)
	c.Set(ctx, cache.Documents, cache.ListKey("", 1, 20, "INVOICE"), ver, payload{Total: 45})
	c.Set(ctx, cache.Documents, cache.ListKey("", 2, 20, "INVOICE"), ver, payload{Total: 45})

	c.Invalidate(ctx, cache.Documents)

	_, ok := c.Get(ctx, cache.Documents, cache.ListKey("", 1, 20, "INVOICE"), &got)
	assert.False(t, ok)
	_, ok = c.Get(ctx, cache.Documents, cache.ListKey("", 2, 20, "INVOICE"), &got)
	assert.False(t, ok)
}

func TestInvalidateIsScopedToEntity(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := cache.ListKey("", 1, 20)

	var got payload
	custVer, _ := c.Get(ctx, cache.Customers, key, &got)
	catVer, _ := c.Get(ctx, cache.CatalogItems, key, &got)
	c.Set(ctx, cache.Customers, key, custVer, payload{Total: 3})
	c.Set(ctx, cache.CatalogItems, key, catVer, payload{Total: 7})

	c.Invalidate(ctx, cache.Customers)

	_, ok := c.Get(ctx, cache.Customers, key, &got)
	assert.False(t, ok)
	_, ok = c.Get(ctx, cache.CatalogItems, key, &got)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.Total)
}

// A listing that queried the database before a mutation must not be
// stored as current after that mutation invalidated the entity: the
// write carries the version pinned at read time and lands in the
// superseded namespace.
func TestWriteAfterInvalidateIsOrphaned(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := cache.ListKey("", 1, 20, "INVOICE")

	var got payload
	ver, ok := c.Get(ctx, cache.Documents, key, &got)
	require.False(t, ok)

	// A document mutation commits and invalidates while the listing is
	// still in flight.
	c.Invalidate(ctx, cache.Documents)

	c.Set(ctx, cache.Documents, key, ver, payload{Total: 45})

	_, ok = c.Get(ctx, cache.Documents, key, &got)
	assert.False(t, ok, "pre-mutation payload must not be served after invalidation")
}

func TestSetWithUnknownVersionIsDropped(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	key := cache.ListKey("", 1, 20)

	c.Set(ctx, cache.Customers, key, cache.VersionUnknown, payload{Total: 9})

	var got payload
	_, ok := c.Get(ctx, cache.Customers, key, &got)
	assert.False(t, ok)
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedisListCache(client, time.Second, nil)
	ctx := context.Background()
	key := cache.ListKey("oil", 1, 20)

	var got payload
	ver, _ := c.Get(ctx, cache.CatalogItems, key, &got)
	c.Set(ctx, cache.CatalogItems, key, ver, payload{Total: 2})
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx, cache.CatalogItems, key, &got)
	assert.False(t, ok)
}

func TestBackendDownDegradesToMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	key := cache.ListKey("", 1, 20)

	var got payload
	ver, _ := c.Get(ctx, cache.Customers, key, &got)
	c.Set(ctx, cache.Customers, key, ver, payload{Total: 1})
	mr.Close()

	gotVer, ok := c.Get(ctx, cache.Customers, key, &got)
	assert.False(t, ok)
	assert.Equal(t, cache.VersionUnknown, gotVer)
}
