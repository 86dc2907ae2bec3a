package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
)

func TestCutoverStageMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.CutoverConfig{RouteToGo: true, CanaryPercentage: 100, StageHeader: "X-Stage", SegmentHeader: "X-Segment"}
	svc := service.NewCutoverService(cfg, nil, nil)

	var stage models.CutoverStage
	router := gin.New()
	router.Use(CutoverStage(svc))
	router.GET("/", func(c *gin.Context) {
		rollout, ok := Rollout(c)
		require.True(t, ok)
		stage = rollout.Stage
		c.Status(http.StatusNoContent)
	})

	rec := serve(router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "full-cutover", rec.Header().Get("X-Stage"))
	assert.NotEmpty(t, rec.Header().Get("X-Segment"))
	assert.Equal(t, "true", rec.Header().Get("X-Cutover-Canary"))
	assert.Equal(t, models.CutoverStageFull, stage)
}

func TestCutoverStageMiddlewareDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CutoverStage(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := serve(router, http.MethodGet, "/", "")
	assert.Empty(t, rec.Header().Get("X-Cutover-Stage"))
}

func TestRolloutWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := Rollout(c)
	assert.False(t, ok)

	c.Set(rolloutContextKey, "not a rollout")
	_, ok = Rollout(c)
	assert.False(t, ok)
}
