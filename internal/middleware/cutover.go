package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/internal/service"
)

const (
	rolloutContextKey = "cutover_rollout"
	canaryHeader      = "X-Cutover-Canary"
)

// CutoverStage tells the edge proxy and the scheduling UI which rollout stage
// answered: stage, client segment and canary membership go out as headers
// and stay on the context for audit lines.
func CutoverStage(cutoverSvc *service.CutoverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cutoverSvc == nil {
			c.Next()
			return
		}
		rollout := cutoverSvc.HeadersForRequest(c.Request)
		header := c.Writer.Header()
		setNonEmpty(header, rollout.StageHeader, string(rollout.Stage))
		setNonEmpty(header, rollout.SegmentHeader, rollout.Segment)
		header.Set(canaryHeader, strconv.FormatBool(rollout.Canary))
		c.Set(rolloutContextKey, rollout)
		c.Next()
	}
}

// Rollout returns the decision CutoverStage made for this request.
func Rollout(c *gin.Context) (models.CutoverHeaders, bool) {
	value, ok := c.Get(rolloutContextKey)
	if !ok {
		return models.CutoverHeaders{}, false
	}
	rollout, ok := value.(models.CutoverHeaders)
	return rollout, ok
}

func setNonEmpty(header http.Header, key, value string) {
	if key == "" || value == "" {
		return
	}
	header.Set(key, value)
}
