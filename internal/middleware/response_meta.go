package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey  = "response_meta"
	requestStartedAt = "request_started_at"
)

// WithResponseMeta gives handlers a metadata map for enveloped responses.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartedAt, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from the summary cache.
func SetCacheHit(c *gin.Context, hit bool) {
	if meta := lookupMeta(c); meta != nil {
		meta["cache_hit"] = hit
	}
}

// SetDataVersion records the schedule data version the payload was built from.
func SetDataVersion(c *gin.Context, version string) {
	if meta := lookupMeta(c); meta != nil && version != "" {
		meta["data_version"] = version
	}
}

// ExtractMeta returns the collected metadata stamped with the time spent so
// far. Outside WithResponseMeta it returns nil.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	meta := lookupMeta(c)
	if meta == nil {
		return nil
	}
	if value, ok := c.Get(requestStartedAt); ok {
		if started, ok := value.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(started).Milliseconds()
		}
	}
	return meta
}

func lookupMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	meta, _ := value.(map[string]interface{})
	return meta
}
