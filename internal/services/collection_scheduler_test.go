package services

import (
	"context"
	"testing"
)

func TestCollectionSchedulerRejectsBadSpec(t *testing.T) {
	f := newFixture(t)
	s := NewCollectionScheduler(NewCollectionService(f.db, nil, testClock()), "not a cron spec")
	if err := s.Start(context.Background()); err == nil {
		t.Error("Expected error for invalid cron spec")
	}
	// stopping a scheduler that never started is a no-op
	s.Stop()
}

func TestCollectionSchedulerStartStop(t *testing.T) {
	f := newFixture(t)
	s := NewCollectionScheduler(NewCollectionService(f.db, nil, testClock()), "0 */6 * * *")
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
	if s.isRunning {
		t.Error("Expected scheduler to be stopped")
	}
}
