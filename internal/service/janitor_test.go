package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSweeper struct {
	calls []time.Time
	n     int
}

func (s *fakeSweeper) AbandonIdle(now time.Time) int {
	s.calls = append(s.calls, now)
	return s.n
}

func TestJanitor_Sweep(t *testing.T) {
	sw := &fakeSweeper{n: 3}
	j := NewJanitor(sw, "*/5 * * * *", zap.NewNop())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := j.Sweep(now); got != 3 {
		t.Fatalf("Sweep = %d, want 3", got)
	}
	if len(sw.calls) != 1 || !sw.calls[0].Equal(now) {
		t.Fatalf("calls = %v", sw.calls)
	}
}

func TestJanitor_StartStopsWithContext(t *testing.T) {
	j := NewJanitor(&fakeSweeper{}, "*/5 * * * *", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitor_InvalidSchedule(t *testing.T) {
	j := NewJanitor(&fakeSweeper{}, "not a schedule", zap.NewNop())

	done := make(chan struct{})
	go func() {
		j.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor with a bad schedule kept running")
	}
}
