package dgmenu

import (
	"context"
	"time"
)

// DefaultSweepInterval is how often the sweeper visits every listener.
const DefaultSweepInterval = 5 * time.Second

// StartSweeper starts the background loop that periodically ticks every
// registered listener and evicts the finished ones. Idempotent: the loop is
// started at most once per Manager, so wiring it to repeated Ready events is
// safe. The loop stops when the Manager is stopped.
//
// The sweeper is started automatically by the default Ready route; call this
// directly only when no Ready event will ever be dispatched.
func (m *Manager) StartSweeper() {
	if !m.sweeping.CompareAndSwap(false, true) {
		return
	}
	go m.sweepLoop()
}

func (m *Manager) sweepLoop() {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep(m.ctx)
		}
	}
}

// sweep runs one full pass: snapshot the registry, tick every listener under
// its own lock, then remove the ones that reported themselves finished.
// Snapshotting first keeps a slow tick on one listener from stalling registry
// operations on unrelated identities, and means a listener inserted mid-pass
// is simply picked up next time.
func (m *Manager) sweep(ctx context.Context) {
	var finished []MessageIdentity

	for id, h := range m.registry.Snapshot() {
		var done bool
		err := h.Do(func(l Listener) error {
			tickErr := l.OnTick(ctx)
			// Evaluated even when the tick errored: a failing listener that
			// declares itself finished must still be evicted.
			done = l.Finished()
			return tickErr
		})
		if err != nil {
			m.logger.Error("listener tick failed", "message", id, "error", err)
		}
		if done {
			finished = append(finished, id)
		}
	}

	for _, id := range finished {
		m.registry.Remove(id)
	}
}
