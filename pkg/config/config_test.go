package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.True(t, cfg.Conflicts.CrossSchedule)
	assert.Equal(t, 400, cfg.Conflicts.MaxWindowDays)
	assert.Equal(t, 30*time.Second, cfg.Conflicts.CacheTTL)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, 1, cfg.Warmup.Workers)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFLICTS_CROSS_SCHEDULE", "false")
	t.Setenv("CONFLICTS_CACHE_TTL", "2m")
	t.Setenv("CONFLICTS_MAX_WINDOW_DAYS", "-3")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Conflicts.CrossSchedule)
	assert.Equal(t, 2*time.Minute, cfg.Conflicts.CacheTTL)
	assert.Equal(t, 400, cfg.Conflicts.MaxWindowDays)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Second, parseDuration("bogus", time.Second))
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, 5*time.Second, parseDuration("5s", time.Minute))
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadCutover(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CUTOVER_ROUTE_TO_GO", "true")
	t.Setenv("CUTOVER_CANARY_PERCENTAGE", "25")
	t.Setenv("LEGACY_BASE_URL", "http://legacy.internal:3000/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cutover.RouteToGo)
	assert.True(t, cfg.Cutover.ShadowTraffic)
	assert.Equal(t, 25, cfg.Cutover.CanaryPercentage)
	assert.Equal(t, "http://legacy.internal:3000", cfg.Cutover.LegacyBaseURL)
	assert.Equal(t, "X-Cutover-Stage", cfg.Cutover.StageHeader)
	assert.Equal(t, 2*time.Second, cfg.Cutover.HealthCheckTimeout)
}
