// Package config loads server configuration from the environment, reading a
// local .env file first when one exists.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string `env:"ADDR,default=:8080"`
	ValkeyAddr string `env:"VALKEY_ADDR,default=127.0.0.1:6379"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=24h"`

	// Signups are restricted to institutional addresses.
	AllowedEmailDomain string `env:"ALLOWED_EMAIL_DOMAIN,default=@srmist.edu.in"`

	CORSOrigin string `env:"CORS_ORIGIN,default=http://127.0.0.1:5173"`

	UploadDir     string        `env:"UPLOAD_DIR,default=./uploads"`
	PublicBaseURL string        `env:"PUBLIC_BASE_URL,default=http://localhost:8080"`
	SigningSecret string        `env:"URL_SIGNING_SECRET,required"`
	SignedURLTTL  time.Duration `env:"SIGNED_URL_TTL,default=8760h"` // 1 year

	RateLimitRPS   int `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST,default=40"`
}

// Load reads .env (if present) and decodes the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}
