// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mailer renders email templates and delivers them.

# Templates

Templates are looked up by identifier. EventReminderEmail takes an
EventReminderProps value, validated before rendering:

	err := sender.SendTemplate(ctx, mailer.EventReminderEmail, "ada@example.com", mailer.EventReminderProps{...})

The subject is "Reminder: <title>". Bodies are rendered as HTML and plain
text. When Props.Calendar is set an invite.ics attachment is added.

# Senders

  - SMTPSender: one go-mail session per message, bounded by the caller's
    deadline and SMTPConfig.Timeout
  - LogSender: logs the rendered message, for setups without SMTP

Render errors (unknown template, invalid props) and transport errors are both
returned from SendTemplate; callers treat them alike.
*/
package mailer
