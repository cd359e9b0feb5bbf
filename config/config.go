package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the loaded gateway configuration
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`

	// Base URL of the upstream commerce backend. Everything the gateway
	// serves is forwarded there; it keeps no state of its own.
	UpstreamBaseURL string `env:"UPSTREAM_BASE_URL" envDefault:"http://commerce-backend:9000"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`
	SessionMaxAge     int    `env:"SESSION_MAX_AGE" envDefault:"86400"`
	CookieSecure      bool   `env:"COOKIE_SECURE" envDefault:"false"`

	// Where AdminGate sends unauthenticated browser navigations.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
}

// Load reads the .env file (if present) and parses the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("FATAL: failed to parse configuration: %v", err)
	}
	return cfg
}
