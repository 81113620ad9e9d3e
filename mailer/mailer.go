// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// EventReminderEmail is the template identifier for event reminders
const EventReminderEmail = "EventReminderEmail"

var (
	ErrUnknownTemplate = errors.New("unknown email template")
	ErrInvalidProps    = errors.New("invalid template props")
)

// Sender delivers a rendered template to one recipient
type Sender interface {
	SendTemplate(ctx context.Context, name string, to string, props any) error
}

// Rendered is a template ready to be put on the wire
type Rendered struct {
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// EventReminderProps is the property bag of EventReminderEmail
type EventReminderProps struct {
	PollURL      string `validate:"required"`
	Title        string
	HostName     string
	Date         string `validate:"required"`
	Day          string `validate:"required"`
	Dow          string `validate:"required"`
	Time         string `validate:"required"`
	Location     string
	ReminderTime string `validate:"required"`

	// Calendar adds an .ics attachment when set
	Calendar *CalendarEvent
}

// CalendarEvent describes the event for the .ics attachment
type CalendarEvent struct {
	UID      string    `validate:"required"`
	Start    time.Time `validate:"required"`
	End      time.Time
	AllDay   bool
	Location string
}

type renderFunc func(props any, now time.Time) (Rendered, error)

var templates = map[string]renderFunc{
	EventReminderEmail: renderEventReminder,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Render looks up the template and renders it with props
func Render(name string, props any, now time.Time) (Rendered, error) {
	render, ok := templates[name]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return render(props, now)
}

func renderEventReminder(props any, now time.Time) (Rendered, error) {
	var p EventReminderProps
	switch v := props.(type) {
	case EventReminderProps:
		p = v
	case *EventReminderProps:
		if v == nil {
			return Rendered{}, fmt.Errorf("%w: nil props", ErrInvalidProps)
		}
		p = *v
	default:
		return Rendered{}, fmt.Errorf("%w: %s expects EventReminderProps, got %T", ErrInvalidProps, EventReminderEmail, props)
	}

	if err := validate.Struct(p); err != nil {
		return Rendered{}, fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}

	html, text, err := executeEventReminder(p)
	if err != nil {
		return Rendered{}, err
	}

	r := Rendered{
		Subject: "Reminder: " + p.Title,
		HTML:    html,
		Text:    text,
	}

	if p.Calendar != nil {
		ics, err := buildCalendar(p.Title, p.PollURL, p.Calendar, now)
		if err != nil {
			return Rendered{}, err
		}
		r.Attachments = append(r.Attachments, Attachment{
			Filename:    "invite.ics",
			ContentType: "text/calendar; charset=utf-8; method=PUBLISH",
			Data:        ics,
		})
	}

	return r, nil
}
