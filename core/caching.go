package core

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/codequal/core/plugin"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached score stays valid.
const cacheTTL = 7 * 24 * time.Hour

// checkScoreCache returns the cached score for key unless it is missing,
// written by another cache version or older than cacheTTL.
func checkScoreCache(store contract.CacheStore, key string) (schema.CachedScore, bool) {
	cached, err := store.GetScore(key, currentCacheVersion, time.Now().Add(-cacheTTL))
	if err != nil {
		return schema.CachedScore{}, false // Cache miss
	}
	return cached, true
}

// storeScore writes a score to the cache. Failures only cost a future miss.
func storeScore(store contract.CacheStore, key string, cached schema.CachedScore) {
	if err := store.PutScore(key, currentCacheVersion, cached, time.Now()); err != nil {
		contract.LogDebug("score cache write failed", "err", err)
	}
}

// pruneScoreCache drops entries no reader would accept anymore.
func pruneScoreCache(store contract.CacheStore) {
	removed, err := store.Prune(currentCacheVersion, time.Now().Add(-cacheTTL))
	if err != nil {
		contract.LogWarn("score cache prune failed", err)
		return
	}
	if removed > 0 {
		contract.LogDebug("pruned score cache", "removed", removed)
	}
}

// scoreCacheKey identifies a file's score by language, tool invocation and content.
// Moving or renaming an unchanged file keeps its key.
func scoreCacheKey(p *plugin.Plugin, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s\x00%s\x00%s\x00", p.ID, p.Tool.Binary, strings.Join(p.Tool.Flags, "\x1f"))
	_, _ = h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}
