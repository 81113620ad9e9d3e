// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/handlers"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config, runner handlers.ReminderRunner, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st, cfg)
	remindersHandler := handlers.NewRemindersHandler(runner)
	cronSecret := auth.NewCronSecret(cfg.CronSecret)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// House-keeping (cron, bearer auth)
	mux.HandleFunc("GET /api/house-keeping/send-reminders",
		middleware.WithLogging(middleware.RequireCronSecret(cronSecret, remindersHandler.SendReminders)))

	// Poll management (admin operations)
	mux.HandleFunc("GET /polls/{id}/duplicate", middleware.WithLogging(pollHandler.GetDuplicate))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-meet API v1"))
	})

	return mux
}
