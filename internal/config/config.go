package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = "3000"
	defaultEnv           = "development"
	defaultDBPath        = "./octozek.db"
	defaultResendBaseURL = "https://api.resend.com"
	defaultOrdersEmail   = "orders@octozekprops.com"
	defaultMaxBodyBytes  = 10 << 20
	defaultMailTimeout   = 15 * time.Second
	defaultLogLevel      = "info"
)

// Local development origins of the order form.
var devOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port          string
	Env           string
	DBPath        string
	ResendAPIKey  string
	ResendBaseURL string
	FromEmail     string
	ToEmail       string
	CORSOrigin    string
	MaxBodyBytes  int64
	MailTimeout   time.Duration
	LogLevel      string
	LogFormat     string

	warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:          envOr("PORT", defaultPort),
		Env:           envOr("APP_ENV", defaultEnv),
		DBPath:        envOr("DB_PATH", defaultDBPath),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		ResendBaseURL: envOr("RESEND_BASE_URL", defaultResendBaseURL),
		FromEmail:     envOr("FROM_EMAIL", defaultOrdersEmail),
		ToEmail:       envOr("TO_EMAIL", defaultOrdersEmail),
		CORSOrigin:    os.Getenv("CORS_ORIGIN"),
		LogLevel:      envOr("LOG_LEVEL", defaultLogLevel),
		LogFormat:     os.Getenv("LOG_FORMAT"),
	}

	cfg.MaxBodyBytes = defaultMaxBodyBytes
	if raw := os.Getenv("MAX_BODY_BYTES"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			cfg.warnf("MAX_BODY_BYTES=%q is invalid, using %d", raw, cfg.MaxBodyBytes)
		} else {
			cfg.MaxBodyBytes = n
		}
	}

	cfg.MailTimeout = defaultMailTimeout
	if raw := os.Getenv("MAIL_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			cfg.warnf("MAIL_TIMEOUT=%q is invalid, using %s", raw, cfg.MailTimeout)
		} else {
			cfg.MailTimeout = d
		}
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	}

	if cfg.ResendAPIKey == "" {
		cfg.warnf("RESEND_API_KEY is not set; orders will not be emailed")
	}
	if cfg.CORSOrigin == "" && !cfg.IsDev() {
		cfg.warnf("CORS_ORIGIN is not set; only local origins are allowed")
	}

	return cfg
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}

// MailConfigured reports whether a mail credential is present.
func (c Config) MailConfigured() bool {
	return c.ResendAPIKey != ""
}

// AllowedOrigins lists the CORS origins accepted by the server.
func (c Config) AllowedOrigins() []string {
	origins := append([]string(nil), devOrigins...)
	if c.CORSOrigin != "" {
		origins = append(origins, c.CORSOrigin)
	}
	return origins
}

// Warnings returns configuration problems found by Load.
func (c Config) Warnings() []string {
	return c.warnings
}

func (c *Config) warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
