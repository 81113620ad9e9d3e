// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

var eventReminderHTML = htmltemplate.Must(htmltemplate.New("event-reminder.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
<h1 style="font-size: 20px;">Reminder: {{.Title}}</h1>
<p>This is a reminder that <strong>{{.Title}}</strong> is scheduled to start in {{.ReminderTime}}.</p>
<table role="presentation" cellpadding="0" cellspacing="0">
<tr>
<td style="width: 48px; height: 48px; border: 1px solid #e5e7eb; border-radius: 5px; text-align: center;">
<div style="font-size: 10px;">{{.Dow}}</div>
<div style="font-size: 20px; font-weight: bold;">{{.Day}}</div>
</td>
<td style="padding-left: 16px;">
<div style="font-weight: bold;">{{.Date}}</div>
<div style="color: #6b7280;">{{.Time}}</div>
{{- if .Location}}
<div style="color: #6b7280; margin-top: 4px;">{{.Location}}</div>
{{- end}}
</td>
</tr>
</table>
<p>We hope to see you there!</p>
<p style="margin-top: 32px;"><a href="{{.PollURL}}" style="background: #4f46e5; color: #ffffff; padding: 10px 16px; border-radius: 6px; text-decoration: none;">View Event</a></p>
</body>
</html>
`))

var eventReminderText = texttemplate.Must(texttemplate.New("event-reminder.txt").Parse(`Reminder: {{.Title}}

This is a reminder that {{.Title}} is scheduled to start in {{.ReminderTime}}.

{{.Dow}} {{.Date}}
{{.Time}}
{{- if .Location}}
{{.Location}}
{{- end}}
{{- if .HostName}}
Hosted by {{.HostName}}
{{- end}}

We hope to see you there!

View Event: {{.PollURL}}
`))

func executeEventReminder(p EventReminderProps) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := eventReminderHTML.Execute(&hb, p); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	if err := eventReminderText.Execute(&tb, p); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return hb.String(), tb.String(), nil
}
