// Package cache provides the short-lived listing cache. List results are
// cached per entity type under a version-stamped key; every mutation bumps
// the entity's version counter so previously cached pages can never be
// served stale. Entries additionally expire after a short TTL.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Entity identifies a cacheable entity type. The version counter is kept
// per entity, so mutating a document invalidates document listings without
// touching catalog listings.
type Entity string

const (
	Customers    Entity = "customers"
	Documents    Entity = "documents"
	CatalogItems Entity = "catalogItems"
)

// DefaultTTL bounds how long a list entry may live even without any
// mutation.
const DefaultTTL = 60 * time.Second

// Version pins an entity's invalidation counter as observed when a
// listing read began. A write carries the pinned version, so a payload
// queried before a mutation and stored after that mutation's Invalidate
// lands in the orphaned old-version namespace instead of being served as
// current.
type Version int64

// VersionUnknown marks a failed version lookup. Writes carrying it are
// discarded.
const VersionUnknown Version = -1

// ListCache caches serialized list results keyed by entity type and the
// listing parameters. Implementations must treat every failure as a cache
// miss: the cache is an optimization, never a source of truth.
type ListCache interface {
	// Get unmarshals the cached value for (entity, key) into dest and
	// reports whether a fresh entry was found. The returned version must
	// be passed unchanged to the Set that stores the recomputed payload.
	Get(ctx context.Context, entity Entity, key string, dest any) (Version, bool)

	// Set stores value under (entity, key) at the given pinned version.
	// Writes with VersionUnknown are dropped.
	Set(ctx context.Context, entity Entity, key string, ver Version, value any)

	// Invalidate bumps the version counter of each entity, orphaning all
	// previously cached pages for it.
	Invalidate(ctx context.Context, entities ...Entity)
}

// ListKey builds the parameter part of a cache key from the listing
// inputs. Extra tokens (e.g. the document type filter) are appended in
// order.
func ListKey(search string, page, limit int, extra ...string) string {
	parts := []string{fmt.Sprintf("s=%s|p=%d|l=%d", search, page, limit)}
	parts = append(parts, extra...)
	return strings.Join(parts, "|")
}

// Noop is the fallback when no cache backend is configured. All reads
// miss and all writes are discarded.
type Noop struct{}

func (Noop) Get(context.Context, Entity, string, any) (Version, bool) { return VersionUnknown, false }
func (Noop) Set(context.Context, Entity, string, Version, any)        {}
func (Noop) Invalidate(context.Context, ...Entity)                    {}

var _ ListCache = Noop{}
