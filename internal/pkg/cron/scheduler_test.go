package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	var calls int32
	s.AddJob("counting", time.Hour, func(_ context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(_ context.Context) error {
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	// The failing job never blocks the counting one.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStartRunsJobsImmediately(t *testing.T) {
	t.Parallel()

	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("immediate", time.Hour, func(_ context.Context) error {
		close(done)
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
}
