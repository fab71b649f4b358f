// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

// Package captcha verifies hCaptcha tokens on the login endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultVerifyURL = "https://api.hcaptcha.com/siteverify"
	verifyTimeout    = 10 * time.Second
)

// VerifyResponse is the hCaptcha API response.
type VerifyResponse struct {
	Success     bool     `json:"success"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
	ChallengeTS string   `json:"challenge_ts"`
}

// Verifier checks captcha tokens against the hCaptcha API. A disabled
// verifier accepts everything, so deployments without a captcha key keep
// working.
type Verifier struct {
	secretKey string
	enabled   bool
	verifyURL string
	client    *http.Client
}

// NewVerifier creates a Verifier. The captcha is active only when enabled
// is set and a secret key is configured.
func NewVerifier(secretKey string, enabled bool) *Verifier {
	return &Verifier{
		secretKey: secretKey,
		enabled:   enabled && secretKey != "",
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: verifyTimeout},
	}
}

// Enabled reports whether tokens are actually checked.
func (v *Verifier) Enabled() bool {
	return v.enabled
}

// Verify checks a captcha token. remoteIP is optional.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.enabled {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return false, fmt.Errorf("building captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("parsing captcha response: %w", err)
	}

	if !result.Success {
		slog.Warn("captcha verification failed",
			"error_codes", result.ErrorCodes,
			"remote_ip", remoteIP,
		)
	}
	return result.Success, nil
}
