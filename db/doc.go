// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Drivers

Two database types are supported:

  - postgres: github.com/lib/pq, used in production
  - sqlite: modernc.org/sqlite (pure Go), used for local development and tests

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - app_user, space, space_member, subscription: accounts and billing
  - poll, poll_option: polls and their proposed slots
  - scheduled_event, invite: the finalized event and its RSVPs
  - reminder_delivery: one row per reminder claimed or sent

# Relationships

	app_user 1──* space 1──1 subscription
	poll 1──* poll_option
	poll *──1 scheduled_event 1──* invite
	invite 1──* reminder_delivery

reminder_delivery is unique on (invite_id, event_start): an invite is
reminded at most once per event start, and a rescheduled event is reminded
again.
*/
package db
