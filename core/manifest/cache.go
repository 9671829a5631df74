package manifest

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	table Table
	id    uint32
}

// recordCache holds decoded records of one snapshot. Records are immutable,
// so cached pointers are shared between callers. A nil cache is disabled.
type recordCache struct {
	lru *lru.Cache[cacheKey, any]
}

func newRecordCache(size int) (*recordCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[cacheKey, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create record cache: %w", err)
	}
	return &recordCache{lru: c}, nil
}

func (c *recordCache) get(table Table, id uint32) (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.lru.Get(cacheKey{table: table, id: id})
}

func (c *recordCache) add(table Table, id uint32, rec any) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey{table: table, id: id}, rec)
}

// Len returns the number of cached records.
func (c *recordCache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
