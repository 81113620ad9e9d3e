// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-meet/eventtime"
	"github.com/danielhkuo/quickly-meet/mailer"
	"github.com/danielhkuo/quickly-meet/metrics"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/runlock"
	"github.com/danielhkuo/quickly-meet/sl"
	"github.com/danielhkuo/quickly-meet/store"
)

// WindowMinutes is the lookahead of one run. The external scheduler is
// expected to invoke Run at this cadence.
const WindowMinutes = 15

// Store lists the polls eligible for reminders
type Store interface {
	ListReminderCandidates(ctx context.Context) ([]models.ReminderPoll, error)
}

// Ledger remembers which invites were already reminded
type Ledger interface {
	ClaimDelivery(ctx context.Context, d store.Delivery) (bool, error)
	ReleaseDelivery(ctx context.Context, inviteID string, eventStart time.Time) error
}

// Locker keeps concurrent runs apart
type Locker interface {
	Acquire(ctx context.Context) (func(), error)
}

// Report is the outcome of one run: recipients reached and per-recipient errors
type Report struct {
	Sent   []string
	Errors []string
}

type Dispatcher struct {
	store   Store
	sender  mailer.Sender
	ledger  Ledger
	locker  Locker
	metrics *metrics.Metrics
	baseURL string
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Dispatcher)

func WithLedger(l Ledger) Option {
	return func(d *Dispatcher) { d.ledger = l }
}

func WithLocker(l Locker) Option {
	return func(d *Dispatcher) { d.locker = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func New(st Store, sender mailer.Sender, baseURL string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:   st,
		sender:  sender,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run sends every reminder due in the current window. Only a failure to
// take the lock or load candidates is returned as an error; per-recipient
// failures end up in Report.Errors.
func (d *Dispatcher) Run(ctx context.Context) (Report, error) {
	started := time.Now()
	log := d.logger.With("run_id", uuid.NewString())
	report := Report{Sent: []string{}, Errors: []string{}}

	if d.locker != nil {
		release, err := d.locker.Acquire(ctx)
		if errors.Is(err, runlock.ErrHeld) {
			log.Warn("reminder run skipped, another run is in progress")
			d.metrics.ObserveRun(metrics.OutcomeSkipped, time.Since(started), 0, 0)
			return report, nil
		}
		if err != nil {
			d.metrics.ObserveRun(metrics.OutcomeFailed, time.Since(started), 0, 0)
			return Report{}, fmt.Errorf("failed to acquire run lock: %w", err)
		}
		defer release()
	}

	now := d.now()

	polls, err := d.store.ListReminderCandidates(ctx)
	if err != nil {
		d.metrics.ObserveRun(metrics.OutcomeFailed, time.Since(started), 0, 0)
		return Report{}, err
	}

	for _, poll := range polls {
		reminderAt, ok := ReminderTime(poll)
		if !ok {
			continue
		}

		minutes := MinutesUntil(reminderAt, now)
		if minutes < 0 || minutes > WindowMinutes {
			if minutes < 0 && poll.ScheduledEvent.Start.After(now) {
				log.Debug("reminder window already passed", "poll_id", poll.ID, "reminder_at", reminderAt)
			}
			continue
		}

		leadTime := FormatLeadTime(*poll.ReminderMinutesBefore)
		for _, invite := range poll.ScheduledEvent.Invites {
			d.remind(ctx, log, poll, invite, leadTime, &report)
		}
	}

	d.metrics.ObserveRun(metrics.OutcomeCompleted, time.Since(started), len(report.Sent), len(report.Errors))
	log.Info("reminder run completed",
		"polls", len(polls),
		"sent", len(report.Sent),
		"errors", len(report.Errors),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return report, nil
}

// remind handles one invite and folds the outcome into report
func (d *Dispatcher) remind(ctx context.Context, log *slog.Logger, poll models.ReminderPoll, invite models.Invite, leadTime string, report *Report) {
	if invite.Status != models.InviteAccepted && invite.Status != models.InviteTentative {
		return
	}
	if invite.InviteeEmail == nil || *invite.InviteeEmail == "" {
		return
	}
	email := *invite.InviteeEmail
	event := poll.ScheduledEvent

	if d.ledger != nil {
		claimed, err := d.ledger.ClaimDelivery(ctx, store.Delivery{
			InviteID:   invite.ID,
			PollID:     poll.ID,
			EventStart: event.Start,
			Recipient:  email,
			SentAt:     d.now(),
		})
		if err != nil {
			d.fail(log, report, email, err)
			return
		}
		if !claimed {
			log.Debug("reminder already delivered", "poll_id", poll.ID, "invite_id", invite.ID)
			return
		}
	}

	if err := d.send(ctx, poll, invite, email, leadTime); err != nil {
		if d.ledger != nil {
			if relErr := d.ledger.ReleaseDelivery(context.WithoutCancel(ctx), invite.ID, event.Start); relErr != nil {
				log.Warn("failed to release reminder claim", "invite_id", invite.ID, sl.Err(relErr))
			}
		}
		d.fail(log, report, email, err)
		return
	}

	report.Sent = append(report.Sent, email)
	log.Info("reminder sent", "poll_id", poll.ID, "invite_id", invite.ID, "to", email)
}

func (d *Dispatcher) fail(log *slog.Logger, report *Report, email string, err error) {
	msg := fmt.Sprintf("Failed to send reminder to %s: %v", email, err)
	report.Errors = append(report.Errors, msg)
	log.Error(msg, sl.Err(err))
}

func (d *Dispatcher) send(ctx context.Context, poll models.ReminderPoll, invite models.Invite, email, leadTime string) error {
	event := poll.ScheduledEvent

	formatted, err := eventtime.Format(eventtime.Event{
		Start:    event.Start,
		End:      event.End,
		AllDay:   event.AllDay,
		TimeZone: deref(event.TimeZone),
	}, deref(invite.InviteeTimeZone))
	if err != nil {
		return err
	}

	props := mailer.EventReminderProps{
		PollURL:      d.baseURL + "/invite/" + poll.ID,
		Title:        poll.Title,
		HostName:     deref(poll.HostName),
		Date:         formatted.Date,
		Day:          formatted.Day,
		Dow:          formatted.Dow,
		Time:         formatted.Time,
		Location:     deref(poll.Location),
		ReminderTime: leadTime,
		Calendar: &mailer.CalendarEvent{
			UID:      event.ID + "@quickly-meet",
			Start:    event.Start,
			End:      event.End,
			AllDay:   event.AllDay,
			Location: deref(poll.Location),
		},
	}

	return d.sender.SendTemplate(ctx, mailer.EventReminderEmail, email, props)
}

// ReminderTime is the event start minus the lead time. ok is false when the
// poll has no event or no positive lead time.
func ReminderTime(poll models.ReminderPoll) (time.Time, bool) {
	if poll.ScheduledEvent == nil || poll.ReminderMinutesBefore == nil || *poll.ReminderMinutesBefore <= 0 {
		return time.Time{}, false
	}
	lead := time.Duration(*poll.ReminderMinutesBefore) * time.Minute
	return poll.ScheduledEvent.Start.Add(-lead), true
}

// MinutesUntil is the whole minutes from now to t, truncated toward zero
func MinutesUntil(t, now time.Time) int {
	return int(t.Sub(now) / time.Minute)
}

// FormatLeadTime renders a lead time in its largest whole unit,
// e.g. "1 day", "2 hours", "45 minutes".
func FormatLeadTime(minutes int) string {
	switch {
	case minutes >= 1440:
		return plural(minutes/1440, "day")
	case minutes >= 60:
		return plural(minutes/60, "hour")
	default:
		return plural(minutes, "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
