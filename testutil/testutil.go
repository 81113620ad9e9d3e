// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/db"
	"github.com/danielhkuo/quickly-meet/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		AdminKeySalt: "test-admin-salt",
		CronSecret:   "test-cron-secret",
		BaseURL:      "https://meet.example.com",
		MailFrom:     "noreply@example.com",
	}
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, db *sql.DB, name, email string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO app_user (id, name, email, created_at) VALUES ($1, $2, $3, $4)
	`, id, name, email, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

type EventFixture struct {
	Start    time.Time
	Duration time.Duration // defaults to one hour
	AllDay   bool
	TimeZone *string
	Status   string // defaults to confirmed
	Deleted  bool
}

// CreateTestEvent inserts a scheduled event and returns its ID
func CreateTestEvent(t *testing.T, db *sql.DB, e EventFixture) string {
	t.Helper()

	if e.Duration == 0 {
		e.Duration = time.Hour
	}
	if e.Status == "" {
		e.Status = models.EventStatusConfirmed
	}
	var deletedAt *time.Time
	if e.Deleted {
		deletedAt = Ptr(e.Start.Add(-24 * time.Hour).UTC())
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO scheduled_event (id, start_time, end_time, all_day, time_zone, status, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, e.Start.UTC(), e.Start.Add(e.Duration).UTC(), e.AllDay, e.TimeZone, e.Status, deletedAt)
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}
	return id
}

type PollFixture struct {
	Title           string // defaults to "Test Poll"
	Description     *string
	Location        *string
	TimeZone        *string
	Status          string // defaults to finalized
	UserID          *string
	SendReminder    bool
	ReminderMinutes *int
	EventID         *string

	HideParticipants        bool
	HideScores              bool
	DisableComments         bool
	RequireParticipantEmail bool
}

// CreateTestPoll inserts a poll and returns its ID
func CreateTestPoll(t *testing.T, db *sql.DB, p PollFixture) string {
	t.Helper()

	if p.Title == "" {
		p.Title = "Test Poll"
	}
	if p.Status == "" {
		p.Status = models.PollStatusFinalized
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO poll (
			id, title, description, location, time_zone, status, user_id,
			send_reminder, reminder_minutes_before, scheduled_event_id,
			hide_participants, hide_scores, disable_comments, require_participant_email, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, id, p.Title, p.Description, p.Location, p.TimeZone, p.Status, p.UserID,
		p.SendReminder, p.ReminderMinutes, p.EventID,
		p.HideParticipants, p.HideScores, p.DisableComments, p.RequireParticipantEmail, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return id
}

// CreateTestInvite inserts an invite for an event and returns its ID
func CreateTestInvite(t *testing.T, db *sql.DB, eventID, name string, email *string, status string, timeZone *string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO invite (id, scheduled_event_id, invitee_name, invitee_email, invitee_time_zone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, eventID, name, email, timeZone, status)
	if err != nil {
		t.Fatalf("Failed to create test invite: %v", err)
	}
	return id
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, pollID string, start time.Time, duration int) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO poll_option (id, poll_id, start_time, duration)
		VALUES ($1, $2, $3, $4)
	`, id, pollID, start.UTC(), duration)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}
	return id
}

// SentEmail is one call recorded by FakeSender
type SentEmail struct {
	Template string
	To       string
	Props    any
}

// FakeSender records sends and fails for addresses listed in FailFor
type FakeSender struct {
	mu      sync.Mutex
	Sent    []SentEmail
	FailFor map[string]error
}

func (f *FakeSender) SendTemplate(ctx context.Context, name string, to string, props any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.FailFor[to]; ok {
		return err
	}
	f.Sent = append(f.Sent, SentEmail{Template: name, To: to, Props: props})
	return nil
}

// Recipients lists the addresses sent to, in order
func (f *FakeSender) Recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []string{}
	for _, s := range f.Sent {
		out = append(out, s.To)
	}
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
