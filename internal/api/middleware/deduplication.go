package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-aggregator/internal/pkg/common"
)

// Deduplicator 請求去重器
// 短視窗內的重複寫入（例如連點收藏切換）直接擋下
type Deduplicator struct {
	mu       sync.RWMutex
	window   time.Duration
	requests map[string]time.Time
}

// NewDeduplicator 創建去重器並啟動過期清理
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}

	d := &Deduplicator{
		window:   window,
		requests: make(map[string]time.Time),
	}

	go d.startCleanup()
	return d
}

// startCleanup 定期清掉過期的請求指紋
func (d *Deduplicator) startCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		d.mu.Lock()
		for k, t := range d.requests {
			if now.Sub(t) > 10*d.window {
				delete(d.requests, k)
			}
		}
		d.mu.Unlock()
	}
}

// seen 檢查指紋是否在視窗內出現過，沒有的話記錄下來
func (d *Deduplicator) seen(fingerprint string) bool {
	now := time.Now()

	d.mu.RLock()
	last, exists := d.requests[fingerprint]
	d.mu.RUnlock()

	if exists && now.Sub(last) <= d.window {
		return true
	}

	d.mu.Lock()
	d.requests[fingerprint] = now
	d.mu.Unlock()
	return false
}

// Middleware 去重中間件，只處理寫入請求
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" && c.Request.Method != "PUT" && c.Request.Method != "DELETE" {
			c.Next()
			return
		}

		// 請求指紋：方法 + 路徑（+ 請求體哈希）
		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}

			hash := sha256.Sum256(body)
			fingerprint += ":" + hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		if d.seen(fingerprint) {
			c.JSON(429, gin.H{
				"error": "Request too frequent",
				"code":  common.ErrCodeTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
