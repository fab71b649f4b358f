// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GAMBARIE_SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./data/gambarie.db", cfg.DBPath)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UseRedisCache())
	assert.False(t, cfg.UmamiEnabled())
	assert.False(t, cfg.HCaptchaEnabled(), "captcha needs keys even when enabled")
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("GAMBARIE_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv("GAMBARIE_SESSION_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "GAMBARIE_SESSION_SECRET"))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GAMBARIE_SESSION_SECRET", testSecret)
	t.Setenv("GAMBARIE_ENV", "production")
	t.Setenv("GAMBARIE_SERVER_HOST", "0.0.0.0")
	t.Setenv("GAMBARIE_SERVER_PORT", "9000")
	t.Setenv("GAMBARIE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddr())
	assert.True(t, cfg.UseRedisCache())
}

func TestHCaptchaEnabled(t *testing.T) {
	t.Setenv("GAMBARIE_SESSION_SECRET", testSecret)
	t.Setenv("GAMBARIE_HCAPTCHA_SITE_KEY", "site")
	t.Setenv("GAMBARIE_HCAPTCHA_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HCaptchaEnabled())

	t.Setenv("GAMBARIE_CAPTCHA_ENABLED", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.HCaptchaEnabled())
}
