// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

// buildCalendar encodes a single-event iCalendar file
func buildCalendar(summary, url string, ev *CalendarEvent, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//quickly-meet//reminders//EN")

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, ev.UID)
	if summary != "" {
		vevent.Props.SetText(ical.PropSummary, summary)
	}
	if url != "" {
		vevent.Props.SetText(ical.PropDescription, url)
	}
	if ev.Location != "" {
		vevent.Props.SetText(ical.PropLocation, ev.Location)
	}

	if ev.AllDay {
		vevent.Props.SetDate(ical.PropDateTimeStart, ev.Start.UTC())
		if !ev.End.IsZero() {
			vevent.Props.SetDate(ical.PropDateTimeEnd, ev.End.UTC())
		}
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.UTC())
		if !ev.End.IsZero() {
			vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.UTC())
		}
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())

	cal.Children = append(cal.Children, vevent.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
