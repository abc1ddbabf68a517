package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"

	// CacheHeader mirrors the cache flag for clients that ignore the envelope.
	CacheHeader = "X-Cache"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		meta := ensureMeta(c)
		if _, exists := meta["processing_time_ms"]; !exists {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit records cache hit information for the current response.
func SetCacheHit(c *gin.Context, hit bool) {
	meta := ensureMeta(c)
	meta[cacheHitKey] = hit
	if c != nil {
		value := "MISS"
		if hit {
			value = "HIT"
		}
		c.Header(CacheHeader, value)
	}
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

// MetaWithTiming returns the request metadata with the elapsed time since start.
func MetaWithTiming(c *gin.Context, start time.Time) map[string]interface{} {
	meta := ensureMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
