// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package eventtime formats scheduled event times for display in emails.
package eventtime

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	dateLayout = "January 2, 2006"
	dayLayout  = "2"
	dowLayout  = "Mon"
	timeLayout = "3:04 PM"
)

// Event is the subset of a scheduled event needed for formatting
type Event struct {
	Start    time.Time
	End      time.Time
	AllDay   bool
	TimeZone string // empty means floating (UTC)
}

// Formatted holds display strings for an event
type Formatted struct {
	Date string // "March 14, 2026"
	Day  string // "14"
	Dow  string // "Sat"
	Time string // "3:00 PM - 4:00 PM CET" or "All day"
}

// Format renders the event in inviteeTimeZone, falling back to the event's
// own timezone and then UTC. All-day events keep their UTC calendar date.
func Format(e Event, inviteeTimeZone string) (Formatted, error) {
	if e.AllDay {
		start := e.Start.UTC()
		return Formatted{
			Date: start.Format(dateLayout),
			Day:  start.Format(dayLayout),
			Dow:  start.Format(dowLayout),
			Time: "All day",
		}, nil
	}

	tz := inviteeTimeZone
	if tz == "" {
		tz = e.TimeZone
	}

	loc := time.UTC
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Formatted{}, fmt.Errorf("unknown time zone %q: %w", tz, err)
		}
	}

	start := e.Start.In(loc)
	end := e.End.In(loc)

	return Formatted{
		Date: start.Format(dateLayout),
		Day:  start.Format(dayLayout),
		Dow:  start.Format(dowLayout),
		Time: fmt.Sprintf("%s - %s %s", start.Format(timeLayout), end.Format(timeLayout), start.Format("MST")),
	}, nil
}
