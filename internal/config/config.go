package config

import (
	"os"
	"strings"
	"time"
)

type GraderConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret string
	// AllowClaimRoleFallback lets the JWT role claim stand in when the
	// users table has no row for the subject. Dev/offline only.
	AllowClaimRoleFallback bool

	CORSOrigins []string

	Grader GraderConfig
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:               addr,
		DBDriver:               envOr("DB_DRIVER", "sqlite"),
		DBDSN:                  envOr("DB_DSN", ""),
		AuthSecret:             envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AllowClaimRoleFallback: envBool("ALLOW_CLAIM_ROLE_FALLBACK", true),
		CORSOrigins:            csvOr("CORS_ORIGINS", "http://localhost:3000"),
		Grader: GraderConfig{
			// Empty means grade locally against stored model answers.
			BaseURL:      os.Getenv("GRADER_BASE_URL"),
			TokenURL:     os.Getenv("GRADER_TOKEN_URL"),
			ClientID:     envOr("GRADER_CLIENT_ID", "assessment-engine"),
			ClientSecret: os.Getenv("GRADER_CLIENT_SECRET"),
			Timeout:      envDuration("GRADER_TIMEOUT", 30*time.Second),
		},
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
