// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file (if present) before calling ParseFlags, so values in
.env behave exactly like exported environment variables.

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type (sqlite or postgres)
	--base-url    Public base URL for email links
	--admin-salt  Admin key salt
	--cron-secret Bearer token for cron endpoints
	--schedule    Run the reminder job in-process

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, BASE_URL, ADMIN_KEY_SALT, CRON_SECRET,
	SCHEDULE_REMINDERS, SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD,
	MAIL_FROM, REDIS_URL

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or ADMIN_KEY_SALT is missing.
CRON_SECRET is optional: when empty the reminder endpoint fails closed and
answers every call with 500.
*/
package cliparse
