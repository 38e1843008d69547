package source

import (
	"sync"
	"time"

	"recipe-aggregator/internal/pkg/common"

	"go.uber.org/zap"
)

// ResponseCache 上游回應快取
// 兒童食譜來源的查詢是固定的，搜尋在本地過濾，所以短暫快取上游回應
// 可以避免每次搜尋都打一次外部 API
type ResponseCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[string]cacheEntry
	stats cacheStats
}

// cacheEntry 快取條目
type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewResponseCache 創建回應快取，ttl <= 0 時停用
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		return nil
	}

	c := &ResponseCache{
		ttl:   ttl,
		store: make(map[string]cacheEntry),
	}

	common.LogInfo("上游回應快取已初始化",
		zap.Duration("存活時間", ttl),
	)

	return c
}

// Get 獲取快取值
func (c *ResponseCache) Get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	entry, exists := c.store[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.stats.misses++
		c.mu.Unlock()
		common.LogCacheMiss("upstream")
		return nil, false
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.stats.evictions++
		c.stats.misses++
		c.mu.Unlock()
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return nil, false
	}

	c.mu.Lock()
	c.stats.hits++
	c.mu.Unlock()
	common.LogCacheHit("upstream")
	return entry.value, true
}

// Set 設置快取值
func (c *ResponseCache) Set(key string, value interface{}) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate 移除單一快取條目
func (c *ResponseCache) Invalidate(key string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; exists {
		delete(c.store, key)
		c.stats.evictions++
	}
}

// Stats 獲取快取統計信息
func (c *ResponseCache) Stats() map[string]interface{} {
	if c == nil {
		return map[string]interface{}{"enabled": false}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"enabled":   true,
		"size":      len(c.store),
		"hits":      c.stats.hits,
		"misses":    c.stats.misses,
		"evictions": c.stats.evictions,
	}
}
