package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

type Config struct {
	AppEnv string
	Port   string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// Happy hours are evaluated on this wall clock
	Timezone string
	Location *time.Location

	// Preferences
	PreferencesBackend string
	PreferencesFile    string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitPerMinute int
	RecommendLimit     int
	CORSOrigins        []string

	// Logging
	LogLevel string
}

// Load reads the environment, pulling in a .env file outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		AppEnv:             "development",
		Port:               "8000",
		Timezone:           "Local",
		PreferencesBackend: BackendPostgres,
		PreferencesFile:    "preferences.json",
		RedisAddr:          "localhost:6379",
		RateLimitPerMinute: 120,
		RecommendLimit:     20,
		CORSOrigins:        []string{"http://localhost:3000", "http://localhost:5173"},
		LogLevel:           "info",
	}

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.AppEnv = env
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg.AdminEmail = strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if backend := os.Getenv("PREFERENCES_BACKEND"); backend != "" {
		cfg.PreferencesBackend = strings.ToLower(backend)
	}
	if path := os.Getenv("PREFERENCES_FILE"); path != "" {
		cfg.PreferencesFile = path
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		n, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}

	if limit := os.Getenv("RATE_LIMIT_PER_MINUTE"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
		}
		cfg.RateLimitPerMinute = n
	}

	if limit := os.Getenv("RECOMMEND_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return nil, fmt.Errorf("invalid RECOMMEND_LIMIT: %w", err)
		}
		cfg.RecommendLimit = n
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = strings.ToLower(logLevel)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database url is empty")
	}

	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("jwt secret must be at least 16 characters")
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	switch c.PreferencesBackend {
	case BackendPostgres, BackendRedis, BackendMemory:
	case BackendFile:
		if c.PreferencesFile == "" {
			return fmt.Errorf("preferences file path is empty")
		}
	default:
		return fmt.Errorf("unknown preferences backend: %s", c.PreferencesBackend)
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	if c.RecommendLimit < 1 || c.RecommendLimit > 100 {
		return fmt.Errorf("recommend limit must be between 1 and 100")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesRedis reports whether a Redis connection is needed at all.
func (c *Config) UsesRedis() bool {
	return c.PreferencesBackend == BackendRedis || c.RateLimitPerMinute > 0
}
