// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types shared across packages.

# Domain Types

  - Poll: a scheduling poll and its reminder settings
  - PollOption: a proposed date or time slot
  - ScheduledEvent: the confirmed outcome of a finalized poll
  - Invite: one invitee's RSVP for a scheduled event
  - ReminderPoll: a poll eligible for reminders with its event and
    accepted/tentative invites, as returned by the store

# Status Values

Polls: draft, live, paused, finalized. Events: unconfirmed, confirmed,
canceled. Invites: accepted, tentative, declined, pending.

Nullable columns are pointers, following the database/sql scan targets.

# Response Types

	SendRemindersResponse  GET /api/house-keeping/send-reminders (200)
	RunErrorResponse       same endpoint, run-level failure (500)
	PollFormData           GET /polls/{id}/duplicate
	ErrorResponse          every other error
*/
package models
