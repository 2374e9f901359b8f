package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppName string
	Env     string
	Host    string
	Port    int

	JWTSecret          string
	AccessTokenMinutes int

	SessionDBPath string
	// SessionEncKey encrypts persisted session blobs; falls back to the JWT
	// secret when unset. LegacyEncKeys are Fernet keys accepted on decrypt.
	SessionEncKey string
	LegacyEncKeys []string

	CORSOrigins []string
	Debug       bool

	// LoginDelay simulates upstream latency on login/signup; zero disables it.
	LoginDelay time.Duration

	StoryTTL         time.Duration
	StorySweepPeriod time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppName: getEnv("APP_NAME", "StudyVibe API"),
		Env:     getEnv("APP_ENV", "development"),
		Host:    getEnv("HTTP_HOST", "0.0.0.0"),
		Port:    getEnvAsInt("HTTP_PORT", 8000),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24),

		SessionDBPath: getEnv("SESSION_DB_PATH", "studyvibe.db"),
		Debug:         getEnvAsBool("DEBUG", true),

		LoginDelay:       time.Duration(getEnvAsInt("LOGIN_DELAY_MS", 0)) * time.Millisecond,
		StoryTTL:         time.Duration(getEnvAsInt("STORY_TTL_HOURS", 24)) * time.Hour,
		StorySweepPeriod: time.Duration(getEnvAsInt("STORY_SWEEP_MINUTES", 10)) * time.Minute,
	}

	cfg.SessionEncKey = getEnv("SESSION_ENC_KEY", cfg.JWTSecret)
	if legacy := getEnv("LEGACY_ENC_KEYS", ""); legacy != "" {
		parts := strings.Split(legacy, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.LegacyEncKeys = parts
	}

	cors := getEnv("CORS_ORIGINS", "")
	if cors != "" {
		parts := strings.Split(cors, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.CORSOrigins = parts
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
