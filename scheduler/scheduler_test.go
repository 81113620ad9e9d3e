// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-meet/reminders"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Run(ctx context.Context) (reminders.Report, error) {
	r.calls.Add(1)
	return reminders.Report{Sent: []string{"a@example.com"}}, r.err
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&countingRunner{}, "not a cron spec")
	err := s.Start(context.Background())
	assert.Error(t, err)
}

func TestStartStop(t *testing.T) {
	s := New(&countingRunner{}, EveryWindow)
	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestRunOnce(t *testing.T) {
	ok := &countingRunner{}
	New(ok, EveryWindow).runOnce(context.Background())
	assert.Equal(t, int32(1), ok.calls.Load())

	failing := &countingRunner{err: errors.New("query failed")}
	New(failing, EveryWindow).runOnce(context.Background())
	assert.Equal(t, int32(1), failing.calls.Load())
}

type blockingRunner struct {
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (r *blockingRunner) Run(ctx context.Context) (reminders.Report, error) {
	r.started <- struct{}{}
	<-r.release
	r.ctxErr <- ctx.Err()
	return reminders.Report{}, nil
}

func TestStop_WaitsForInFlightRun(t *testing.T) {
	runner := &blockingRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 1),
	}
	s := New(runner, "@every 1s")
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-runner.started:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled run never started")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(runner.release)

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
	assert.NoError(t, <-runner.ctxErr, "a draining run keeps its context")
}
