// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides poll admin keys and the cron bearer-token check.

# Admin Keys

Admin keys are HMAC-SHA256 of the poll ID with ADMIN_KEY_SALT:

	adminKey := auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(pollID, providedKey, cfg.AdminKeySalt)

Keys are deterministic and not stored; clients send them in X-Admin-Key.

# Cron Secret

House-keeping endpoints are called by an external scheduler with

	Authorization: Bearer <CRON_SECRET>

CronSecret wraps the configured value. The zero value (CRON_SECRET unset)
is a distinct state: Check returns ErrCronSecretUnset for every request, so
a deployment that forgot the secret fails closed.

	secret := auth.NewCronSecret(cfg.CronSecret)
	if err := secret.Check(r.Header.Get("Authorization")); err != nil { ... }

Token comparison is constant time.
*/
package auth
