package dgmenu

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeListener records sweeper interactions.
type fakeListener struct {
	BaseListener
	ticks     int
	finished  bool
	tickErr   error
	deleted   bool
	deleteErr error
}

func (l *fakeListener) OnTick(context.Context) error {
	l.ticks++
	return l.tickErr
}

func (l *fakeListener) Finished() bool { return l.finished }

func (l *fakeListener) OnDeleted(context.Context) error {
	l.deleted = true
	return l.deleteErr
}

func TestSweep_TicksEveryListener(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	listeners := make([]*fakeListener, 3)
	for i := range listeners {
		listeners[i] = &fakeListener{}
		if err := m.registry.Insert(NewMessageIdentity(1, uint64(i)), NewHandle(listeners[i])); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	m.sweep(context.Background())
	for i, l := range listeners {
		if l.ticks != 1 {
			t.Errorf("listener %d ticks = %d, want 1", i, l.ticks)
		}
	}
}

func TestSweep_EvictsFinished(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	done := &fakeListener{finished: true}
	alive := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(1, 1), NewHandle(done))
	_ = m.registry.Insert(NewMessageIdentity(1, 2), NewHandle(alive))

	m.sweep(context.Background())

	if _, ok := m.registry.Get(NewMessageIdentity(1, 1)); ok {
		t.Error("finished listener should be evicted")
	}
	if _, ok := m.registry.Get(NewMessageIdentity(1, 2)); !ok {
		t.Error("unfinished listener should survive the sweep")
	}
}

func TestSweep_ErrorDoesNotAbortPass(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	failing := &fakeListener{tickErr: errors.New("boom"), finished: true}
	other := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(1, 1), NewHandle(failing))
	_ = m.registry.Insert(NewMessageIdentity(1, 2), NewHandle(other))

	m.sweep(context.Background())

	if other.ticks != 1 {
		t.Error("tick error on one listener aborted the pass")
	}
	// A failing listener is still evaluated for finished status.
	if _, ok := m.registry.Get(NewMessageIdentity(1, 1)); ok {
		t.Error("failing finished listener should still be evicted")
	}
}

func TestStartSweeper_Idempotent(t *testing.T) {
	m, _ := newTestManager(WithSweepInterval(time.Hour))
	defer m.Stop()

	m.StartSweeper()
	m.StartSweeper()
	if !m.sweeping.Load() {
		t.Error("sweeper should be marked started")
	}
}

func TestStartSweeper_DrivenByLoop(t *testing.T) {
	m, _ := newTestManager(WithSweepInterval(10 * time.Millisecond))
	defer m.Stop()

	l := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(1, 1), NewHandle(l))
	m.StartSweeper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		var ticks int
		h, _ := m.registry.Get(NewMessageIdentity(1, 1))
		_ = h.Do(func(Listener) error {
			ticks = l.ticks
			return nil
		})
		if ticks > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("sweeper loop never ticked the listener")
}
