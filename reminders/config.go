// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminders

import (
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/mailer"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/runlock"
	"github.com/danielhkuo/quickly-meet/sl"
	"github.com/danielhkuo/quickly-meet/store"
)

const lockKey = "quickly-meet:reminders:run"

// FromConfig wires a Dispatcher from configuration: SMTP when SMTP_HOST is
// set (log-only otherwise), the delivery ledger, and the Redis run lock when
// REDIS_URL is set. The returned cleanup closes what was opened.
func FromConfig(cfg cliparse.Config, st *store.Store, m *metrics.Metrics) (*Dispatcher, func(), error) {
	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			Timeout:  cfg.SMTPTimeout,
		})
	} else {
		slog.Warn("SMTP_HOST not set, reminder emails will only be logged")
		sender = mailer.NewLogSender(nil)
	}

	opts := []Option{WithLedger(st), WithMetrics(m)}
	cleanup := func() {}

	if cfg.RedisURL != "" {
		lock, err := runlock.NewFromURL(cfg.RedisURL, lockKey, 10*time.Minute)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, WithLocker(lock))
		cleanup = func() {
			if err := lock.Close(); err != nil {
				slog.Warn("failed to close redis client", sl.Err(err))
			}
		}
	}

	return New(st, sender, cfg.BaseURL, opts...), cleanup, nil
}
