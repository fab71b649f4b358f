// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"GAMBARIE_DB_PATH" envDefault:"./data/gambarie.db"`
	SessionSecret string `env:"GAMBARIE_SESSION_SECRET,required"`
	ServerHost    string `env:"GAMBARIE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"GAMBARIE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"GAMBARIE_ENV" envDefault:"development"`
	LogLevel      string `env:"GAMBARIE_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"GAMBARIE_UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"GAMBARIE_PUBLIC_BASE_URL" envDefault:""`

	// Cache configuration
	RedisURL    string `env:"GAMBARIE_REDIS_URL"`                       // Optional Redis URL for the settings cache
	CachePrefix string `env:"GAMBARIE_CACHE_PREFIX" envDefault:"gse:"`  // Redis key prefix
	CacheTTL    int    `env:"GAMBARIE_CACHE_TTL" envDefault:"3600"`     // Default cache TTL in seconds

	// Umami analytics. The feature is skipped entirely unless both values
	// are present.
	UmamiScriptURL string `env:"GAMBARIE_UMAMI_SCRIPT_URL"`
	UmamiWebsiteID string `env:"GAMBARIE_UMAMI_WEBSITE_ID"`

	// hCaptcha configuration
	HCaptchaSiteKey   string `env:"GAMBARIE_HCAPTCHA_SITE_KEY"`
	HCaptchaSecretKey string `env:"GAMBARIE_HCAPTCHA_SECRET_KEY"`
	CaptchaEnabled    bool   `env:"GAMBARIE_CAPTCHA_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UmamiEnabled returns true if both Umami values are configured.
func (c Config) UmamiEnabled() bool {
	return c.UmamiScriptURL != "" && c.UmamiWebsiteID != ""
}

// HCaptchaEnabled returns true if hCaptcha is configured and not
// explicitly disabled.
func (c Config) HCaptchaEnabled() bool {
	return c.CaptchaEnabled && c.HCaptchaSiteKey != "" && c.HCaptchaSecretKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("GAMBARIE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	return cfg, nil
}
