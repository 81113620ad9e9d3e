// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package scheduler triggers reminder runs from inside the server process,
// for deployments without an external cron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/danielhkuo/quickly-meet/reminders"
	"github.com/danielhkuo/quickly-meet/sl"
)

// EveryWindow fires at the dispatcher's window cadence
const EveryWindow = "*/15 * * * *"

type Runner interface {
	Run(ctx context.Context) (reminders.Report, error)
}

type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
}

func New(runner Runner, spec string) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	return &Scheduler{cron: c, runner: runner, spec: spec}
}

// Start registers the job and starts the cron loop. Each run inherits ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}

	s.cron.Start()
	slog.Info("reminder scheduler started", "spec", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("reminder scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.runner.Run(ctx)
	if err != nil {
		slog.Error("scheduled reminder run failed", sl.Err(err))
		return
	}
	slog.Info("scheduled reminder run finished", "sent", len(report.Sent), "errors", len(report.Errors))
}
