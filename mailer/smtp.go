// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	mail "github.com/wneessen/go-mail"
)

// DefaultSendTimeout bounds one SMTP session when the caller's context has
// no earlier deadline
const DefaultSendTimeout = 30 * time.Second

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender renders templates and hands them to an SMTP relay
type SMTPSender struct {
	cfg SMTPConfig
	now func() time.Time
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSendTimeout
	}
	return &SMTPSender{cfg: cfg, now: time.Now}
}

// SendTemplate delivers one message in its own SMTP session. The whole
// session, greeting through QUIT, ends at the earlier of ctx's deadline and
// the configured timeout, and canceling ctx aborts it.
func (s *SMTPSender) SendTemplate(ctx context.Context, name string, to string, props any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	rendered, err := Render(name, props, now)
	if err != nil {
		return err
	}

	msg, err := BuildMessage(s.cfg.From, to, rendered, now)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var stop func() bool
	dial := func(dialCtx context.Context, network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(dialCtx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
		stop = context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
		return conn, nil
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(dial),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	err = client.DialAndSendWithContext(ctx, msg)
	if stop != nil {
		stop()
	}
	if err != nil {
		ctxErr := ctx.Err()
		if d, ok := ctx.Deadline(); ctxErr == nil && ok && !time.Now().Before(d) {
			// the conn deadline can fire just before ctx's own timer
			ctxErr = context.DeadlineExceeded
		}
		if ctxErr != nil {
			return fmt.Errorf("smtp send: %w: %w", ctxErr, err)
		}
		return fmt.Errorf("smtp send: %w", err)
	}

	slog.Debug("email sent", "template", name, "to", to)
	return nil
}

// BuildMessage assembles the outgoing message: text body with an html
// alternative, followed by any attachments.
func BuildMessage(from, to string, r Rendered, now time.Time) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(r.Subject)
	msg.SetDateWithValue(now)

	msg.SetBodyString(mail.TypeTextPlain, r.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, r.HTML)

	for _, att := range r.Attachments {
		err := msg.AttachReader(att.Filename, bytes.NewReader(att.Data),
			mail.WithFileContentType(mail.ContentType(att.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", att.Filename, err)
		}
	}

	return msg, nil
}
