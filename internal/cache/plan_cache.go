package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// freecache rejects entries larger than 1/1024 of its size,
// 64MB keeps room for 64KB plans, a few dozen exercises over six days.
const minPlanCacheSizeBytes = 64 * 1024 * 1024

var _ Cache = (*PlanCache)(nil)

// PlanCache memoizes computed weekly plans, keyed by a hash of the normalized request.
type PlanCache struct {
	mainCache  *freecache.Cache
	ttlSeconds int
}

func NewPlanCache(sizeMB, ttlSeconds int) *PlanCache {
	sizeBytes := sizeMB * 1024 * 1024
	if sizeBytes < minPlanCacheSizeBytes {
		sizeBytes = minPlanCacheSizeBytes
	}
	return &PlanCache{
		mainCache:  freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
	}
}

func (pc *PlanCache) Get(key []byte) ([]byte, bool) {
	value, err := pc.mainCache.Get(key)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (pc *PlanCache) Set(key, value []byte) bool {
	if err := pc.mainCache.Set(key, value, pc.ttlSeconds); err != nil {
		log.Warnf("plan cache set: %s", err)
		return false
	}
	return true
}

func (pc *PlanCache) Clear() {
	pc.mainCache.Clear()
}

func (pc *PlanCache) EntryCount() int64 {
	return pc.mainCache.EntryCount()
}

// Key returns a stable cache key for v, based on its JSON encoding.
func Key(prefix string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return append([]byte(prefix+":"), sum[:]...), nil
}
