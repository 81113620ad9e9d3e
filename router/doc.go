// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Meet API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, dispatcher, metrics.Handler(reg))

A nil metrics handler leaves /metrics unregistered.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

House-keeping (requires Authorization: Bearer <CRON_SECRET>):

	GET /api/house-keeping/send-reminders - Dispatch due event reminders

Poll management (admin, requires X-Admin-Key):

	GET /polls/{id}/duplicate - Poll as create-form data
*/
package router
