package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

func TestAuditLogsSuccessfulActions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.POST("/refresh",
		func(c *gin.Context) {
			c.Set(ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
			c.Set(rolloutContextKey, models.CutoverHeaders{Stage: models.CutoverStageCanary, Segment: "segment-07"})
		},
		Audit(zap.New(core), "conflicts.refresh"),
		func(c *gin.Context) {
			if c.Query("schedule_id") == "" {
				c.Status(http.StatusBadRequest)
				return
			}
			c.Status(http.StatusAccepted)
		},
	)

	serve(router, http.MethodPost, "/refresh?schedule_id=3", "")
	serve(router, http.MethodPost, "/refresh", "")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "operator action", entry.Message)
	assert.Equal(t, "audit", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "conflicts.refresh", fields["action"])
	assert.Equal(t, "admin-1", fields["user_id"])
	assert.Equal(t, "schedule_id=3", fields["query"])
	assert.Equal(t, int64(http.StatusAccepted), fields["status"])
	assert.Equal(t, "canary", fields["cutover_stage"])
	assert.Equal(t, "segment-07", fields["client_segment"])
}
