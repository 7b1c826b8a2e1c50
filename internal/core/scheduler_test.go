package core

import (
	"context"
	"testing"
	"time"
)

func TestPurgeHistory_Cutoff(t *testing.T) {
	runs := &fakeRuns{purged: 4}
	svc := newTestService(t, nil, runs, Options{})

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	got := svc.purgeHistory(context.Background(), RetentionConfig{RetentionDays: 30}.withDefaults())
	if got != 4 {
		t.Errorf("purgeHistory() = %d, want 4", got)
	}

	want := time.Date(2025, time.May, 16, 12, 0, 0, 0, time.UTC)
	if len(runs.cutoffs) != 1 || !runs.cutoffs[0].Equal(want) {
		t.Errorf("cutoffs = %v, want [%v]", runs.cutoffs, want)
	}
}

func TestRetentionConfig_Defaults(t *testing.T) {
	cfg := RetentionConfig{}.withDefaults()
	if cfg.RetentionDays != 90 || cfg.CheckInterval != 24*time.Hour {
		t.Errorf("withDefaults() = %+v", cfg)
	}
}

func TestStartRetentionScheduler_StopsOnCancel(t *testing.T) {
	runs := &fakeRuns{}
	svc := newTestService(t, nil, runs, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartRetentionScheduler(ctx, RetentionConfig{CheckInterval: 10 * time.Millisecond})
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	runs.mu.Lock()
	passes := len(runs.cutoffs)
	runs.mu.Unlock()
	if passes < 2 {
		t.Errorf("purge passes = %d, want at least 2", passes)
	}
}

func TestStartRetentionScheduler_NoStore(t *testing.T) {
	svc := newTestService(t, nil, nil, Options{})

	done := make(chan struct{})
	go func() {
		svc.StartRetentionScheduler(context.Background(), RetentionConfig{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler without a store did not return")
	}
}
