package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// App
	AppEnv   string // development | production | staging
	HTTPAddr string // e.g. :8080
	LogLevel string // debug | info | warn | error

	// Instagram / Meta
	IGAccessToken string // page access token for outbound Graph calls
	IGVerifyToken string // subscription handshake token
	IGAppSecret   string // for X-Hub-Signature-256 verification
	IGAccountID   string // own IG business account; used to skip self-activity

	// Graph API
	GraphAPIVersion string
	OutboundTimeout time.Duration // per outbound call

	// Keepalive self-ping (optional; empty disables)
	KeepaliveURL string
}

// Load reads the configuration from the environment. Missing secrets are
// not an error here: the caller logs them and lets first use fail.
func Load() *Config {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		IGAccessToken: getEnv("IG_ACCESS_TOKEN", ""),
		IGVerifyToken: getEnv("IG_VERIFY_TOKEN", ""),
		IGAppSecret:   getEnv("IG_APP_SECRET", ""),
		IGAccountID:   getEnv("IG_ACCOUNT_ID", ""),

		GraphAPIVersion: getEnv("GRAPH_API_VERSION", "v21.0"),
		OutboundTimeout: time.Duration(getEnvInt("OUTBOUND_TIMEOUT_SEC", 10)) * time.Second,

		KeepaliveURL: getEnv("KEEPALIVE_URL", ""),
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg
}

// MissingSecrets lists the required env names that are unset. Absence is
// logged at startup, not fatal; dependent calls fail downstream.
func (c *Config) MissingSecrets() []string {
	var missing []string
	if c.IGAccessToken == "" {
		missing = append(missing, "IG_ACCESS_TOKEN")
	}
	if c.IGVerifyToken == "" {
		missing = append(missing, "IG_VERIFY_TOKEN")
	}
	if c.IGAppSecret == "" {
		missing = append(missing, "IG_APP_SECRET")
	}
	if c.IGAccountID == "" {
		missing = append(missing, "IG_ACCOUNT_ID")
	}
	return missing
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "production"
}

// --- helpers ---

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
