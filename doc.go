// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Meet API server.

Quickly Meet is a scheduling-poll service. Once a poll is finalized into a
scheduled event, the server emails a reminder to every attending invitee
shortly before the event starts.

# Starting the Server

The server reads a .env file when present, then environment variables or
CLI flags:

	DATABASE_URL=quickly-meet.db ADMIN_KEY_SALT=... CRON_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-salt ... -cron-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string (a file path for sqlite)
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CRON_SECRET (-cron-secret): Bearer token for house-keeping endpoints
  - BASE_URL (-base-url): Public URL used in reminder links
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, MAIL_FROM: Outgoing mail;
    without SMTP_HOST reminders are only logged
  - SMTP_TIMEOUT: Upper bound on one SMTP session (default 30s)
  - REDIS_URL: Enables a cross-instance lock around reminder runs
  - SCHEDULE_REMINDERS (-schedule): Run the dispatcher every 15 minutes in-process

# Architecture

  - reminders: The reminder dispatcher (eligibility, window, per-recipient isolation)
  - eventtime: Event date/time rendering in the invitee's time zone
  - mailer: Email templates, calendar attachments, SMTP and log senders
  - store: Database queries (reminder candidates, delivery ledger, accounts)
  - handlers: HTTP request handlers (reminders, poll duplication)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, cron bearer auth, JSON helpers
  - scheduler: In-process cron trigger
  - runlock: Redis run lock
  - metrics: Prometheus collectors
  - models: Domain and response types
  - auth: Admin keys and the cron secret
  - db: Connection and schema creation
  - cliparse: Configuration parsing

The pollctl command (cmd/pollctl) offers the same run plus admin tasks
from a shell.
*/
package main
