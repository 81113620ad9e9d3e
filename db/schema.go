// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-meet/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := "postgres"
	if databaseType == cliparse.DatabaseSQLite {
		driver = "sqlite"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	// SQLite serializes writers anyway, and in-memory databases exist per connection
	if databaseType == cliparse.DatabaseSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", databaseType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, databaseType string) error {
	_, err := db.Exec(SchemaFor(databaseType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SchemaFor returns the DDL for the given database type. SQLite only maps
// the TIMESTAMP declared type to time.Time, so TIMESTAMPTZ is rewritten.
func SchemaFor(databaseType string) string {
	if databaseType == cliparse.DatabaseSQLite {
		return strings.ReplaceAll(schema, "TIMESTAMPTZ", "TIMESTAMP")
	}
	return schema
}

const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS space (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    owner_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_space_owner_id ON space(owner_id);

CREATE TABLE IF NOT EXISTS space_member (
    space_id TEXT NOT NULL REFERENCES space(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT 'MEMBER' CHECK (role IN ('ADMIN', 'MEMBER')),
    PRIMARY KEY (space_id, user_id)
);

CREATE TABLE IF NOT EXISTS subscription (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    space_id TEXT NOT NULL UNIQUE REFERENCES space(id) ON DELETE CASCADE,
    price_id TEXT NOT NULL,
    subscription_item_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    currency TEXT NOT NULL,
    billing_interval TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1,
    active BOOLEAN NOT NULL,
    status TEXT NOT NULL,
    period_start TIMESTAMPTZ NOT NULL,
    period_end TIMESTAMPTZ NOT NULL,
    cancel_at_period_end BOOLEAN NOT NULL DEFAULT FALSE
);

-- Scheduled events
CREATE TABLE IF NOT EXISTS scheduled_event (
    id TEXT PRIMARY KEY,
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    all_day BOOLEAN NOT NULL DEFAULT FALSE,
    time_zone TEXT,
    status TEXT NOT NULL DEFAULT 'unconfirmed' CHECK (status IN ('unconfirmed', 'confirmed', 'canceled')),
    deleted_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS invite (
    id TEXT PRIMARY KEY,
    scheduled_event_id TEXT NOT NULL REFERENCES scheduled_event(id) ON DELETE CASCADE,
    invitee_name TEXT NOT NULL,
    invitee_email TEXT,
    invitee_time_zone TEXT,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('accepted', 'tentative', 'declined', 'pending'))
);

CREATE INDEX IF NOT EXISTS idx_invite_event_id ON invite(scheduled_event_id);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    location TEXT,
    time_zone TEXT,
    status TEXT NOT NULL DEFAULT 'live' CHECK (status IN ('draft', 'live', 'paused', 'finalized')),
    user_id TEXT REFERENCES app_user(id) ON DELETE SET NULL,
    send_reminder BOOLEAN NOT NULL DEFAULT FALSE,
    reminder_minutes_before INTEGER,
    scheduled_event_id TEXT UNIQUE REFERENCES scheduled_event(id) ON DELETE SET NULL,
    hide_participants BOOLEAN NOT NULL DEFAULT FALSE,
    hide_scores BOOLEAN NOT NULL DEFAULT FALSE,
    disable_comments BOOLEAN NOT NULL DEFAULT FALSE,
    require_participant_email BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);
CREATE INDEX IF NOT EXISTS idx_poll_user_id ON poll(user_id);

CREATE TABLE IF NOT EXISTS poll_option (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    start_time TIMESTAMPTZ NOT NULL,
    duration INTEGER NOT NULL DEFAULT 0 CHECK (duration >= 0)
);

CREATE INDEX IF NOT EXISTS idx_poll_option_poll_id ON poll_option(poll_id);

-- Reminder deliveries
CREATE TABLE IF NOT EXISTS reminder_delivery (
    id TEXT PRIMARY KEY,
    invite_id TEXT NOT NULL REFERENCES invite(id) ON DELETE CASCADE,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    event_start TIMESTAMPTZ NOT NULL,
    recipient TEXT NOT NULL,
    sent_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (invite_id, event_start)
);
`
