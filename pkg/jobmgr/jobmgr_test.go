package jobmgr

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartPeriodic(t *testing.T) {
	m := NewManager(nil)
	defer m.StopAll()

	var runs atomic.Int32
	err := m.StartPeriodic("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("StartPeriodic: %v", err)
	}

	// The function fires once immediately, before the first tick.
	deadline := time.After(time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := m.StartPeriodic("tick", time.Hour, func(ctx context.Context) error { return nil })
		if err == nil {
			t.Fatal("duplicate job should fail")
		}
	})

	t.Run("listed while running", func(t *testing.T) {
		list := m.List()
		if len(list) != 1 || list[0] != "tick" {
			t.Fatalf("unexpected list: %v", list)
		}
	})
}

func TestStartPeriodicValidatesInterval(t *testing.T) {
	m := NewManager(nil)
	if err := m.StartPeriodic("bad", 0, func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("zero interval should fail")
	}
}

func TestErrorsReportedNotFatal(t *testing.T) {
	var reports atomic.Int32
	m := NewManager(func(msg string) {
		reports.Add(1)
	})
	defer m.StopAll()

	err := m.StartPeriodic("flaky", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	if err != nil {
		t.Fatalf("StartPeriodic: %v", err)
	}

	deadline := time.After(time.Second)
	// Expect at least running + error reports; the job must stay listed.
	for reports.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("reports never arrived, got %d", reports.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	if len(m.List()) != 1 {
		t.Fatal("erroring job should keep running")
	}
}

func TestStop(t *testing.T) {
	m := NewManager(nil)

	if err := m.Stop("ghost"); err == nil {
		t.Fatal("stopping an unknown job should fail")
	}

	_ = m.StartPeriodic("tick", time.Hour, func(ctx context.Context) error { return nil })
	if err := m.Stop("tick"); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if len(m.List()) != 0 {
		t.Fatal("job still listed after Stop")
	}
}

func TestChangeInterval(t *testing.T) {
	m := NewManager(nil)
	defer m.StopAll()

	if err := m.ChangeInterval("ghost", time.Minute); err == nil {
		t.Fatal("changing an unknown job should fail")
	}

	var runs atomic.Int32
	_ = m.StartPeriodic("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	if err := m.ChangeInterval("tick", 0); err == nil {
		t.Fatal("zero interval should fail")
	}

	// Shrinking the interval makes the next tick arrive promptly.
	if err := m.ChangeInterval("tick", 10*time.Millisecond); err != nil {
		t.Fatalf("ChangeInterval: %v", err)
	}
	deadline := time.After(2 * time.Second)
	for runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("interval change never took effect")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestStatus(t *testing.T) {
	m := NewManager(nil)
	if m.Status() != "No jobs are running." {
		t.Fatalf("unexpected status: %q", m.Status())
	}

	_ = m.StartPeriodic("tick", time.Hour, func(ctx context.Context) error { return nil })
	defer m.StopAll()

	if m.Status() != "Running jobs: tick" {
		t.Fatalf("unexpected status: %q", m.Status())
	}
}
