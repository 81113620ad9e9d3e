// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrCronSecretUnset    = errors.New("CRON_SECRET is not set in environment variables")
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrMalformedBearer    = errors.New("malformed authorization header")
	ErrInvalidBearerToken = errors.New("invalid bearer token")
)

// GenerateAdminKey creates an HMAC-based admin key for a poll
// This is deterministic and verifiable
func GenerateAdminKey(pollID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the poll
func ValidateAdminKey(pollID, adminKey, salt string) error {
	expected := GenerateAdminKey(pollID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// CronSecret is the shared token external schedulers present as a bearer
// token. The zero value is unconfigured and rejects everything.
type CronSecret struct {
	token string
}

func NewCronSecret(token string) CronSecret {
	return CronSecret{token: token}
}

func (s CronSecret) Configured() bool {
	return s.token != ""
}

// Same shape as RFC 6750 b64token
var bearerPattern = regexp.MustCompile(`^(?i:Bearer) +([A-Za-z0-9._~+/-]+=*) *$`)

// Check validates an Authorization header value against the secret
func (s CronSecret) Check(authorization string) error {
	if !s.Configured() {
		return ErrCronSecretUnset
	}
	if authorization == "" {
		return ErrMissingBearerToken
	}

	m := bearerPattern.FindStringSubmatch(authorization)
	if m == nil {
		return ErrMalformedBearer
	}

	if subtle.ConstantTimeCompare([]byte(m[1]), []byte(s.token)) != 1 {
		return ErrInvalidBearerToken
	}
	return nil
}
