package models

import "time"

// Poll status constants
const (
	PollStatusDraft     = "draft"
	PollStatusLive      = "live"
	PollStatusPaused    = "paused"
	PollStatusFinalized = "finalized"
)

// Scheduled event status constants
const (
	EventStatusUnconfirmed = "unconfirmed"
	EventStatusConfirmed   = "confirmed"
	EventStatusCanceled    = "canceled"
)

// Invite status constants
const (
	InviteAccepted  = "accepted"
	InviteTentative = "tentative"
	InviteDeclined  = "declined"
	InvitePending   = "pending"
)

// Domain types

type Poll struct {
	ID                      string  `json:"id"`
	Title                   string  `json:"title"`
	Description             *string `json:"description,omitempty"`
	Location                *string `json:"location,omitempty"`
	TimeZone                *string `json:"time_zone,omitempty"`
	Status                  string  `json:"status"`
	UserID                  *string `json:"user_id,omitempty"`
	SendReminder            bool    `json:"send_reminder"`
	ReminderMinutesBefore   *int    `json:"reminder_minutes_before,omitempty"`
	ScheduledEventID        *string `json:"scheduled_event_id,omitempty"`
	HideParticipants        bool    `json:"hide_participants"`
	HideScores              bool    `json:"hide_scores"`
	DisableComments         bool    `json:"disable_comments"`
	RequireParticipantEmail bool    `json:"require_participant_email"`
}

type PollOption struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"` // minutes, 0 for date-only options
}

type ScheduledEvent struct {
	ID        string     `json:"id"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	AllDay    bool       `json:"all_day"`
	TimeZone  *string    `json:"time_zone,omitempty"`
	Status    string     `json:"status"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Invites   []Invite   `json:"invites"`
}

type Invite struct {
	ID              string  `json:"id"`
	InviteeName     string  `json:"invitee_name"`
	InviteeEmail    *string `json:"invitee_email,omitempty"`
	InviteeTimeZone *string `json:"invitee_time_zone,omitempty"`
	Status          string  `json:"status"`
}

// ReminderPoll is a poll eligible for reminders, joined with its event and
// the accepted/tentative invites of that event.
type ReminderPoll struct {
	ID                    string
	Title                 string
	Location              *string
	ReminderMinutesBefore *int
	HostName              *string
	ScheduledEvent        *ScheduledEvent
}

// Response types

// ReminderDetails holds the literal lists behind the counts of a run
type ReminderDetails struct {
	SentReminders []string `json:"sentReminders"`
	Errors        []string `json:"errors"`
}

type SendRemindersResponse struct {
	Success       bool            `json:"success"`
	SentReminders int             `json:"sentReminders"`
	Errors        int             `json:"errors"`
	Details       ReminderDetails `json:"details"`
}

type RunErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// DateOption and TimeSlotOption share one shape on the wire; Type tells them apart
type FormOption struct {
	Type     string `json:"type"` // "date" or "timeSlot"
	Date     string `json:"date,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// PollFormData pre-fills the create-poll form when duplicating a poll
type PollFormData struct {
	Title                   string       `json:"title"`
	Description             string       `json:"description"`
	Location                string       `json:"location"`
	TimeZone                string       `json:"timeZone"`
	Options                 []FormOption `json:"options"`
	View                    string       `json:"view"`
	NavigationDate          string       `json:"navigationDate"`
	Duration                int          `json:"duration"`
	HideParticipants        bool         `json:"hideParticipants"`
	HideScores              bool         `json:"hideScores"`
	DisableComments         bool         `json:"disableComments"`
	RequireParticipantEmail bool         `json:"requireParticipantEmail"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
