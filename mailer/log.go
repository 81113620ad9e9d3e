// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"log/slog"
	"time"
)

// LogSender renders templates and logs them instead of sending. Used when no
// SMTP relay is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendTemplate(ctx context.Context, name string, to string, props any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered, err := Render(name, props, time.Now())
	if err != nil {
		return err
	}

	s.logger.Info("email not sent (no SMTP configured)",
		"template", name,
		"to", to,
		"subject", rendered.Subject,
		"attachments", len(rendered.Attachments),
	)
	return nil
}
