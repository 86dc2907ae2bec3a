package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/handler"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
)

func testRouter(authEnabled bool, env string) (*gin.Engine, *service.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("secret")
	cfg := &config.Config{
		Env:       env,
		APIPrefix: "/api",
		JWT:       config.JWTConfig{Secret: "secret", Enabled: authEnabled},
	}
	metrics := service.NewMetricsService()
	return newRouter(cfg, zap.NewNop(), routerDeps{
		metrics:  metrics,
		tokens:   tokens,
		conflict: handler.NewLessonConflictHandler(nil, nil, nil),
		workload: handler.NewWorkloadWarningHandler(nil, nil, nil),
		holiday:  handler.NewHolidayHandler(nil),
		template: handler.NewTemplateHandler(nil),
		system:   handler.NewMetricsHandler(metrics, nil),
		cutover:  service.NewCutoverService(config.CutoverConfig{ShadowTraffic: true}, metrics, nil),
	}), tokens
}

func do(r http.Handler, method, target, token string) int {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouterPublicEndpoints(t *testing.T) {
	r, _ := testRouter(false, config.EnvDevelopment)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ready", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", ""))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/metrics/snapshot", ""))
	// nil services answer 500, proving the route is mounted without auth
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/api/lesson/conflicts/summary?schedule_id=1", ""))
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/unknown", ""))
}

func TestRouterCutoverHeaders(t *testing.T) {
	r, _ := testRouter(false, config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodGet, "/api/university_holiday", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "shadow", rec.Header().Get("X-Cutover-Stage"))
	assert.Equal(t, "false", rec.Header().Get("X-Cutover-Canary"))
	assert.NotEmpty(t, rec.Header().Get("X-Client-Segment"))
}

func TestRouterAuthEnabled(t *testing.T) {
	r, tokens := testRouter(true, config.EnvProduction)

	sign := func(role models.UserRole) string {
		token, err := tokens.Sign(&models.JWTClaims{
			UserID:           "u-1",
			Role:             role,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		require.NoError(t, err)
		return token
	}

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/university_holiday", ""))
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/api/university_holiday", sign(models.RoleUser)))
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/lesson/conflicts/refresh?schedule_id=1", sign(models.RoleUser)))
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodPost, "/api/lesson/conflicts/refresh?schedule_id=1", sign(models.RoleAdmin)))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", ""))
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/docs/index.html", ""))
}
