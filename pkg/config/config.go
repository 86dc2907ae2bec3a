package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Conflicts  ConflictsConfig
	Warmup     WarmupConfig
	Migrations MigrationsConfig
	Cutover    CutoverConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the shared secret used to verify bearer tokens issued by the
// administration backend. Auth can be switched off for local development.
type JWTConfig struct {
	Secret  string
	Enabled bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ConflictsConfig tunes conflict and workload queries.
type ConflictsConfig struct {
	CrossSchedule  bool
	MaxWindowDays  int
	CacheEnabled   bool
	CacheTTL       time.Duration
	ComputeTimeout time.Duration
}

// WarmupConfig sizes the background queue that recomputes cached summaries.
type WarmupConfig struct {
	Workers int
	Retries int
}

// MigrationsConfig controls schema migration at startup.
type MigrationsConfig struct {
	AutoApply bool
}

// CutoverConfig controls the rollout from the legacy scheduling backend.
type CutoverConfig struct {
	RouteToGo          bool
	ShadowTraffic      bool
	LegacyReadOnly     bool
	CanaryPercentage   int
	StageHeader        string
	SegmentHeader      string
	LegacyBaseURL      string
	HealthCheckTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:  v.GetString("JWT_SECRET"),
		Enabled: v.GetBool("AUTH_ENABLED"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxDays := v.GetInt("CONFLICTS_MAX_WINDOW_DAYS")
	if maxDays <= 0 {
		maxDays = 400
	}
	cfg.Conflicts = ConflictsConfig{
		CrossSchedule:  v.GetBool("CONFLICTS_CROSS_SCHEDULE"),
		MaxWindowDays:  maxDays,
		CacheEnabled:   v.GetBool("CONFLICTS_CACHE_ENABLED"),
		CacheTTL:       parseDuration(v.GetString("CONFLICTS_CACHE_TTL"), 30*time.Second),
		ComputeTimeout: parseDuration(v.GetString("CONFLICTS_COMPUTE_TIMEOUT"), 15*time.Second),
	}

	cfg.Warmup = WarmupConfig{
		Workers: v.GetInt("WARMUP_WORKERS"),
		Retries: v.GetInt("WARMUP_RETRIES"),
	}

	cfg.Migrations = MigrationsConfig{
		AutoApply: v.GetBool("MIGRATIONS_AUTO_APPLY"),
	}

	cfg.Cutover = CutoverConfig{
		RouteToGo:          v.GetBool("CUTOVER_ROUTE_TO_GO"),
		ShadowTraffic:      v.GetBool("CUTOVER_SHADOW_TRAFFIC"),
		LegacyReadOnly:     v.GetBool("CUTOVER_LEGACY_READONLY"),
		CanaryPercentage:   v.GetInt("CUTOVER_CANARY_PERCENTAGE"),
		StageHeader:        v.GetString("CUTOVER_STAGE_HEADER"),
		SegmentHeader:      v.GetString("CUTOVER_SEGMENT_HEADER"),
		LegacyBaseURL:      strings.TrimRight(v.GetString("LEGACY_BASE_URL"), "/"),
		HealthCheckTimeout: parseDuration(v.GetString("CUTOVER_HEALTH_TIMEOUT"), 2*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uni_schedule")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("AUTH_ENABLED", false)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CONFLICTS_CROSS_SCHEDULE", true)
	v.SetDefault("CONFLICTS_MAX_WINDOW_DAYS", 400)
	v.SetDefault("CONFLICTS_CACHE_ENABLED", false)
	v.SetDefault("CONFLICTS_CACHE_TTL", "30s")
	v.SetDefault("CONFLICTS_COMPUTE_TIMEOUT", "15s")

	v.SetDefault("WARMUP_WORKERS", 1)
	v.SetDefault("WARMUP_RETRIES", 2)

	v.SetDefault("MIGRATIONS_AUTO_APPLY", false)

	v.SetDefault("CUTOVER_SHADOW_TRAFFIC", true)
	v.SetDefault("CUTOVER_STAGE_HEADER", "X-Cutover-Stage")
	v.SetDefault("CUTOVER_SEGMENT_HEADER", "X-Client-Segment")
	v.SetDefault("LEGACY_BASE_URL", "http://localhost:3000")
	v.SetDefault("CUTOVER_HEALTH_TIMEOUT", "2s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
