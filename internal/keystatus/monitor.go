// Package keystatus tracks whether a generation credential is available.
package keystatus

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is how often the monitor re-checks credentials.
const DefaultInterval = 3 * time.Second

// CheckFunc reports whether a credential currently resolves.
type CheckFunc func() bool

// Status is a point-in-time view of the monitor.
type Status struct {
	HasKey    bool      `json:"hasKey"`
	Manual    bool      `json:"manual"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Monitor polls a CheckFunc. A key connected by the operator suppresses
// automatic checks until a request reports the credential missing again.
type Monitor struct {
	check    CheckFunc
	interval time.Duration
	logger   zerolog.Logger

	mu        sync.RWMutex
	hasKey    bool
	manual    bool
	checkedAt time.Time
}

// New creates a Monitor. A non-positive interval selects DefaultInterval.
func New(check CheckFunc, interval time.Duration, logger zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		check:    check,
		interval: interval,
		logger:   logger.With().Str("component", "keystatus").Logger(),
	}
}

// Run checks immediately and then on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.Check()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

// Check runs one automatic check. It is a no-op while a manual connection
// is in effect, including one made while the check was running.
func (m *Monitor) Check() {
	m.mu.RLock()
	manual := m.manual
	m.mu.RUnlock()
	if manual {
		return
	}

	ok := m.check()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.manual {
		return
	}
	if ok != m.hasKey {
		m.logger.Info().Bool("has_key", ok).Msg("credential status changed")
	}
	m.hasKey = ok
	m.checkedAt = time.Now()
}

// Connect marks the session as manually connected.
func (m *Monitor) Connect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manual = true
	m.hasKey = true
	m.checkedAt = time.Now()
}

// ReportMissing records that a request failed for lack of a credential.
func (m *Monitor) ReportMissing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasKey {
		m.logger.Warn().Msg("credential rejected, reconnect required")
	}
	m.manual = false
	m.hasKey = false
	m.checkedAt = time.Now()
}

// HasKey reports the current status.
func (m *Monitor) HasKey() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasKey
}

// Snapshot returns the current status.
func (m *Monitor) Snapshot() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{HasKey: m.hasKey, Manual: m.manual, CheckedAt: m.checkedAt}
}
