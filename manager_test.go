package dgmenu

import (
	"context"
	"errors"
	"testing"
)

func TestNew_nilClient(t *testing.T) {
	_, err := New(nil)
	if err != ErrUninitialized {
		t.Fatalf("error = %v, want ErrUninitialized", err)
	}
}

func TestNew_defaults(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	if m.registry == nil {
		t.Error("registry should not be nil")
	}
	if m.dispatcher == nil {
		t.Error("dispatcher should not be nil")
	}
	if m.sweepInterval != DefaultSweepInterval {
		t.Errorf("sweepInterval = %v, want %v", m.sweepInterval, DefaultSweepInterval)
	}
}

func TestManager_StopIdempotent(t *testing.T) {
	m, _ := newTestManager()
	m.Stop()
	m.Stop()
}

func TestRoutes_ReadyStartsSweeper(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	m.Dispatch(context.Background(), Ready{})
	m.dispatcher.wait()
	if !m.sweeping.Load() {
		t.Error("Ready event should start the sweeper")
	}
}

func TestRoutes_ReactionForwarded(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	id := NewMessageIdentity(1, 1)
	received := make(chan Reaction, 1)
	l := &reactionRecorder{added: received}
	_ = m.registry.Insert(id, NewHandle(l))

	r := Reaction{Identity: id, Emoji: "✅", UserID: 7}
	if err := m.routeReaction(context.Background(), r, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case got := <-received:
		if got != r {
			t.Errorf("reaction = %+v, want %+v", got, r)
		}
	default:
		t.Fatal("listener did not receive the reaction")
	}
}

func TestRoutes_ReactionUnknownMessage(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	r := Reaction{Identity: NewMessageIdentity(9, 9), Emoji: "✅", UserID: 7}
	if err := m.routeReaction(context.Background(), r, true); err != nil {
		t.Fatalf("reaction on unknown message should be ignored, got %v", err)
	}
}

func TestRoutes_DeleteEvictsAndNotifies(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	id := NewMessageIdentity(1, 1)
	l := &fakeListener{}
	_ = m.registry.Insert(id, NewHandle(l))

	if err := m.evictDeleted(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.registry.Get(id); ok {
		t.Error("entry should be gone after delete")
	}
	if !l.deleted {
		t.Error("OnDeleted should have fired")
	}
}

func TestRoutes_BulkDelete(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	first := &fakeListener{}
	second := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(1, 1), NewHandle(first))
	_ = m.registry.Insert(NewMessageIdentity(1, 2), NewHandle(second))
	// A listener in another channel is unaffected.
	other := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(2, 1), NewHandle(other))

	m.Dispatch(context.Background(), MessageBulkDelete{ChannelID: 1, MessageIDs: []uint64{1, 2, 3}})
	m.dispatcher.wait()

	if !first.deleted || !second.deleted {
		t.Error("bulk delete should notify every affected listener")
	}
	if other.deleted {
		t.Error("listener in another channel was notified")
	}
	if m.registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.registry.Len())
	}
}

func TestRoutes_BulkDeleteErrorDoesNotOrphan(t *testing.T) {
	m, _ := newTestManager()
	defer m.Stop()

	failing := &fakeListener{deleteErr: errors.New("boom")}
	other := &fakeListener{}
	_ = m.registry.Insert(NewMessageIdentity(1, 1), NewHandle(failing))
	_ = m.registry.Insert(NewMessageIdentity(1, 2), NewHandle(other))

	m.Dispatch(context.Background(), MessageBulkDelete{ChannelID: 1, MessageIDs: []uint64{1, 2}})
	m.dispatcher.wait()

	// A failing OnDeleted must not leave later entries in the registry or
	// deprive them of their deletion notification.
	if _, ok := m.registry.Get(NewMessageIdentity(1, 1)); ok {
		t.Error("entry 1/1 still registered after bulk delete")
	}
	if _, ok := m.registry.Get(NewMessageIdentity(1, 2)); ok {
		t.Error("entry 1/2 still registered after bulk delete")
	}
	if !failing.deleted {
		t.Error("failing listener never notified of its deletion")
	}
	if !other.deleted {
		t.Error("listener 1/2 never notified of its deletion")
	}
}

// reactionRecorder forwards reactions to a channel.
type reactionRecorder struct {
	BaseListener
	added chan Reaction
}

func (l *reactionRecorder) OnReactionAdd(_ context.Context, r Reaction) error {
	l.added <- r
	return nil
}
