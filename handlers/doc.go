// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Meet API.

# Handler Types

  - RemindersHandler: Cron-triggered reminder dispatch
  - PollHandler: Admin poll operations (duplication)

Handlers are created via constructor functions:

	remindersHandler := handlers.NewRemindersHandler(dispatcher)
	pollHandler := handlers.NewPollHandler(store, cfg)

# Reminder Dispatch

	GET /api/house-keeping/send-reminders → SendReminders

The route is wrapped in middleware.RequireCronSecret, so the handler only
runs for callers presenting the CRON_SECRET bearer token. The run is
detached from the request context: a cron client that disconnects does
not abort sends that are already underway.

A successful run answers 200 with the counts and the literal lists:

	{"success": true, "sentReminders": 2, "errors": 0,
	 "details": {"sentReminders": ["a@example.com", "b@example.com"], "errors": []}}

Failures before any reminder is attempted answer 500 with
{"success": false, "error": "..."}.

# Poll Duplication

	GET /polls/{id}/duplicate → GetDuplicate

Requires the X-Admin-Key header. Returns the poll as create-form data
(see package pollform).
*/
package handlers
