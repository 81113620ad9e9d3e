// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-meet/models"
)

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrUserNotFound = errors.New("user not found")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListReminderCandidates returns every finalized poll with reminders enabled
// whose scheduled event is confirmed and not deleted. Each event carries only
// its accepted and tentative invites.
func (s *Store) ListReminderCandidates(ctx context.Context) ([]models.ReminderPoll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.location, p.reminder_minutes_before, u.name,
		       e.id, e.start_time, e.end_time, e.all_day, e.time_zone,
		       i.id, i.invitee_name, i.invitee_email, i.invitee_time_zone, i.status
		FROM poll p
		JOIN scheduled_event e ON e.id = p.scheduled_event_id
		LEFT JOIN app_user u ON u.id = p.user_id
		LEFT JOIN invite i ON i.scheduled_event_id = e.id AND i.status IN ($4, $5)
		WHERE p.status = $1
		  AND p.send_reminder = $2
		  AND p.reminder_minutes_before IS NOT NULL
		  AND e.status = $3
		  AND e.deleted_at IS NULL
		ORDER BY p.id, i.id
	`, models.PollStatusFinalized, true, models.EventStatusConfirmed,
		models.InviteAccepted, models.InviteTentative)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder polls: %w", err)
	}
	defer rows.Close()

	polls := []models.ReminderPoll{}
	for rows.Next() {
		var (
			p            models.ReminderPoll
			e            models.ScheduledEvent
			reminderMins sql.NullInt64
			inviteID     sql.NullString
			inviteeName  sql.NullString
			inviteStatus sql.NullString
			inv          models.Invite
		)
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Location, &reminderMins, &p.HostName,
			&e.ID, &e.Start, &e.End, &e.AllDay, &e.TimeZone,
			&inviteID, &inviteeName, &inv.InviteeEmail, &inv.InviteeTimeZone, &inviteStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder poll: %w", err)
		}

		if len(polls) == 0 || polls[len(polls)-1].ID != p.ID {
			if reminderMins.Valid {
				m := int(reminderMins.Int64)
				p.ReminderMinutesBefore = &m
			}
			e.Status = models.EventStatusConfirmed
			e.Invites = []models.Invite{}
			p.ScheduledEvent = &e
			polls = append(polls, p)
		}

		if inviteID.Valid {
			inv.ID = inviteID.String
			inv.InviteeName = inviteeName.String
			inv.Status = inviteStatus.String
			current := polls[len(polls)-1].ScheduledEvent
			current.Invites = append(current.Invites, inv)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminder polls: %w", err)
	}

	return polls, nil
}

// Delivery is one reminder to one invite for one event start
type Delivery struct {
	InviteID   string
	PollID     string
	EventStart time.Time
	Recipient  string
	SentAt     time.Time
}

// ClaimDelivery reserves the reminder for one invite and event start. It
// returns false when another run already holds or sent it.
func (s *Store) ClaimDelivery(ctx context.Context, d Delivery) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reminder_delivery (id, invite_id, poll_id, event_start, recipient, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (invite_id, event_start) DO NOTHING
	`, uuid.NewString(), d.InviteID, d.PollID, d.EventStart.UTC(), d.Recipient, d.SentAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder delivery: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder delivery: %w", err)
	}
	return n == 1, nil
}

// ReleaseDelivery drops a claim so a later run can retry the reminder
func (s *Store) ReleaseDelivery(ctx context.Context, inviteID string, eventStart time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM reminder_delivery WHERE invite_id = $1 AND event_start = $2
	`, inviteID, eventStart.UTC())
	if err != nil {
		return fmt.Errorf("failed to release reminder delivery: %w", err)
	}
	return nil
}

// GetPollWithOptions loads a poll and its options ordered by start time
func (s *Store) GetPollWithOptions(ctx context.Context, pollID string) (models.Poll, []models.PollOption, error) {
	var (
		p            models.Poll
		reminderMins sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, location, time_zone, status, user_id,
		       send_reminder, reminder_minutes_before, scheduled_event_id,
		       hide_participants, hide_scores, disable_comments, require_participant_email
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&p.ID, &p.Title, &p.Description, &p.Location, &p.TimeZone, &p.Status, &p.UserID,
		&p.SendReminder, &reminderMins, &p.ScheduledEventID,
		&p.HideParticipants, &p.HideScores, &p.DisableComments, &p.RequireParticipantEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, nil, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to query poll: %w", err)
	}
	if reminderMins.Valid {
		m := int(reminderMins.Int64)
		p.ReminderMinutesBefore = &m
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, start_time, duration
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY start_time, id
	`, pollID)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.StartTime, &opt.Duration); err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to iterate options: %w", err)
	}

	return p, options, nil
}
