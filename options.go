package dgmenu

import (
	"log/slog"
	"time"
)

// Option configures the Manager during creation.
type Option func(*Manager)

// WithSweepInterval overrides how often the sweeper visits listeners.
// Non-positive values are ignored.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.sweepInterval = d
		}
	}
}

// WithLogger sets the logger used by the Manager, the dispatcher and every
// menu built from it.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}
