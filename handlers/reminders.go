// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/reminders"
	"github.com/danielhkuo/quickly-meet/sl"
)

// ReminderRunner performs one reminder dispatch run
type ReminderRunner interface {
	Run(ctx context.Context) (reminders.Report, error)
}

type RemindersHandler struct {
	runner ReminderRunner
}

func NewRemindersHandler(runner ReminderRunner) *RemindersHandler {
	return &RemindersHandler{runner: runner}
}

// SendReminders handles GET /api/house-keeping/send-reminders
// Bearer auth is enforced by middleware.RequireCronSecret.
func (h *RemindersHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	// A cron caller that hangs up must not abort a half-finished run.
	ctx := context.WithoutCancel(r.Context())

	report, err := h.runner.Run(ctx)
	if err != nil {
		slog.Error("reminder run failed", sl.Err(err))
		middleware.JSONResponse(w, http.StatusInternalServerError, models.RunErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SendRemindersResponse{
		Success:       true,
		SentReminders: len(report.Sent),
		Errors:        len(report.Errors),
		Details: models.ReminderDetails{
			SentReminders: report.Sent,
			Errors:        report.Errors,
		},
	})
}
