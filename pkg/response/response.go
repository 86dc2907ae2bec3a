package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends an enveloped success response with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Payload writes data without the envelope. Used by endpoints whose shape is
// fixed by existing clients. A non-empty etag is sent as a strong validator.
func Payload(c *gin.Context, status int, data interface{}, etag string) {
	if etag != "" {
		c.Header("ETag", quoteETag(etag))
		c.Header("Cache-Control", "private, no-cache")
	} else {
		noStore(c)
	}
	c.JSON(status, data)
}

// NotModified answers a conditional request whose etag still matches.
func NotModified(c *gin.Context, etag string) {
	c.Header("ETag", quoteETag(etag))
	c.Header("Cache-Control", "private, no-cache")
	c.Status(http.StatusNotModified)
	c.Writer.WriteHeaderNow()
}

// Accepted responds with HTTP 202 for work handed to a background queue.
func Accepted(c *gin.Context, data interface{}) {
	JSON(c, http.StatusAccepted, data)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// ETagMatches reports whether the If-None-Match header carries etag.
func ETagMatches(c *gin.Context, etag string) bool {
	if etag == "" {
		return false
	}
	header := c.GetHeader("If-None-Match")
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}
	quoted := quoteETag(etag)
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == quoted || candidate == "W/"+quoted {
			return true
		}
	}
	return false
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

func quoteETag(etag string) string {
	if len(etag) >= 2 && etag[0] == '"' && etag[len(etag)-1] == '"' {
		return etag
	}
	return `"` + etag + `"`
}
