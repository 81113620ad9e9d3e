// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package pollform converts stored polls into create-poll form data, used
// to pre-fill the form when a poll is duplicated.
package pollform

import (
	"time"

	"github.com/danielhkuo/quickly-meet/models"
)

const (
	OptionDate     = "date"
	OptionTimeSlot = "timeSlot"

	DefaultDuration = 60
	DefaultView     = "month"

	isoLayout  = "2006-01-02T15:04:05.000Z07:00"
	dateLayout = "2006-01-02"
)

// FromPoll builds form data from a poll and its options. now is the
// navigation date when the poll has no options.
func FromPoll(poll models.Poll, options []models.PollOption, now time.Time) models.PollFormData {
	formOptions := make([]models.FormOption, 0, len(options))
	for _, opt := range options {
		start := opt.StartTime.UTC()
		if opt.Duration == 0 {
			formOptions = append(formOptions, models.FormOption{
				Type: OptionDate,
				Date: start.Format(dateLayout),
			})
			continue
		}
		end := start.Add(time.Duration(opt.Duration) * time.Minute)
		formOptions = append(formOptions, models.FormOption{
			Type:     OptionTimeSlot,
			Start:    start.Format(isoLayout),
			End:      end.Format(isoLayout),
			Duration: opt.Duration,
		})
	}

	navigation := now.UTC()
	if len(options) > 0 {
		navigation = options[0].StartTime.UTC()
	}

	return models.PollFormData{
		Title:                   poll.Title,
		Description:             orEmpty(poll.Description),
		Location:                orEmpty(poll.Location),
		TimeZone:                orEmpty(poll.TimeZone),
		Options:                 formOptions,
		View:                    DefaultView,
		NavigationDate:          navigation.Format(isoLayout),
		Duration:                commonDuration(options),
		HideParticipants:        poll.HideParticipants,
		HideScores:              poll.HideScores,
		DisableComments:         poll.DisableComments,
		RequireParticipantEmail: poll.RequireParticipantEmail,
	}
}

// commonDuration is the duration shared by every timed option, or the default
func commonDuration(options []models.PollOption) int {
	common := 0
	for _, opt := range options {
		if opt.Duration == 0 {
			continue
		}
		if common == 0 {
			common = opt.Duration
			continue
		}
		if opt.Duration != common {
			return DefaultDuration
		}
	}
	if common == 0 {
		return DefaultDuration
	}
	return common
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
