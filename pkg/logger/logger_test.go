package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/uni-schedule-api/pkg/config"
)

func TestNewFallsBackToInfo(t *testing.T) {
	log, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "loud", Format: "json"}})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestGinMiddlewareLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/lesson/groups", func(c *gin.Context) {
		c.Header("X-Cache", "HIT")
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Status(http.StatusInternalServerError)
	})

	for _, target := range []string{"/lesson/groups?schedule_id=1", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 3)

	ok := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/lesson/groups", ok["route"])
	assert.Equal(t, "schedule_id=1", ok["query"])
	assert.Equal(t, "HIT", ok["cache"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["route"])

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[2].ContextMap()["errors"], "db down")
}
