// Package jobmgr runs named periodic jobs with cancellation, status
// callbacks and runtime interval changes.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    log.Println("JOB:", msg)
//	})
//
//	err := jm.StartPeriodic("refresh", 5*time.Minute, func(ctx context.Context) error {
//	    // do one round of work
//	    return nil
//	})
//
//	// later...
//	_ = jm.ChangeInterval("refresh", 10*time.Minute)
//	_ = jm.Stop("refresh")
//
// The package is intentionally minimal: no retry logic, no persistence.
// Each job runs in its own goroutine; the function is invoked once
// immediately on start and then on every tick.
package jobmgr

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultManager is the global job manager.
var DefaultManager = NewManager(nil)

// StatusReporter receives lifecycle events for jobs.
// Example messages:
//
//	running:refresh
//	error:refresh:failed to connect
//	stopped:refresh
type StatusReporter func(string)

type job struct {
	name     string
	cancel   context.CancelFunc
	interval chan time.Duration
}

// Manager orchestrates starting, stopping and tracking periodic jobs.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*job
	Reporter StatusReporter
}

// NewManager creates a new Manager. The reporter callback may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*job),
		Reporter: reporter,
	}
}

// StartPeriodic runs fn immediately and then every interval until the
// job is stopped. If a job with the same name is already running, an
// error is returned. Errors from fn are reported, not fatal; the job
// keeps ticking.
func (m *Manager) StartPeriodic(name string, interval time.Duration, fn func(ctx context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("job '%s': interval must be positive", name)
	}

	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job '%s' is already running", name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &job{name: name, cancel: cancel, interval: make(chan time.Duration, 1)}
	m.jobs[name] = j
	m.mu.Unlock()

	go func() {
		m.report("running:" + name)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			if err := fn(ctx); err != nil {
				m.report("error:" + name + ":" + err.Error())
			}
		}

		run()
		for {
			select {
			case <-ctx.Done():
				m.report("stopped:" + name)
				return
			case d := <-j.interval:
				ticker.Reset(d)
			case <-ticker.C:
				run()
			}
		}
	}()

	return nil
}

// ChangeInterval adjusts a running job's tick interval. Takes effect
// without re-running the job.
func (m *Manager) ChangeInterval(name string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("job '%s': interval must be positive", name)
	}

	m.mu.Lock()
	j, ok := m.jobs[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}

	select {
	case j.interval <- interval:
	default:
		// A pending change is superseded; drain and replace.
		select {
		case <-j.interval:
		default:
		}
		j.interval <- interval
	}
	return nil
}

// Stop cancels a running job by name.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}

	j.cancel()
	delete(m.jobs, name)
	return nil
}

// StopAll cancels every running job.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, j := range m.jobs {
		j.cancel()
		delete(m.jobs, name)
	}
}

// List returns the list of active job names.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	return out
}

// Status returns a human-readable summary of active jobs.
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
