// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Cron Authentication

Guard house-keeping endpoints with the shared cron secret:

	secret := auth.NewCronSecret(cfg.CronSecret)
	mux.HandleFunc("GET /api/house-keeping/send-reminders",
		middleware.WithLogging(middleware.RequireCronSecret(secret, h.SendReminders)))

Responses when the check fails:

  - secret not configured: 500 {"error": "CRON_SECRET is not set in environment variables"}
  - header not of the form "Bearer <token>": 400
  - header missing or token wrong: 401

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs and rejected cron calls.
*/
package middleware
