package stats

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// Cache keeps computed stats per owner for a short time. Each owner has a
// generation number that is part of every key; InvalidateOwner bumps it so
// older entries are never read again and age out of freecache.
type Cache struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCache(sizeBytes, ttlSeconds int) *Cache {
	return &Cache{
		cache:      freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
	}
}

func generationKey(ownerID int) []byte {
	return []byte(fmt.Sprintf("gen::%d", ownerID))
}

func (c *Cache) generation(ownerID int) uint64 {
	raw, err := c.cache.Get(generationKey(ownerID))
	if err != nil || len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func (c *Cache) key(ownerID int, query string) []byte {
	return []byte(fmt.Sprintf("%d::%d::%s", ownerID, c.generation(ownerID), query))
}

// Get decodes a cached value into v and reports whether it was found.
func (c *Cache) Get(ownerID int, query string, v any) bool {
	raw, err := c.cache.Get(c.key(ownerID, query))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Errorf("stats cache, unmarshal [%s] for owner %d: %s", query, ownerID, err)
		return false
	}
	return true
}

func (c *Cache) Set(ownerID int, query string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Errorf("stats cache, marshal [%s] for owner %d: %s", query, ownerID, err)
		return
	}
	if err := c.cache.Set(c.key(ownerID, query), raw, c.ttlSeconds); err != nil {
		log.Errorf("stats cache, set [%s] for owner %d: %s", query, ownerID, err)
	}
}

func (c *Cache) InvalidateOwner(ownerID int) {
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, c.generation(ownerID)+1)
	// generations never expire
	if err := c.cache.Set(generationKey(ownerID), next, 0); err != nil {
		log.Errorf("stats cache, invalidate owner %d: %s", ownerID, err)
	}
}

func (c *Cache) EntryCount() int64 {
	return c.cache.EntryCount()
}
