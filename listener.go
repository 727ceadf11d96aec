package dgmenu

import (
	"context"
	"sync"
)

// Listener is a stateful object attached to one message, driven by external
// notifications and periodic ticks. Implementations usually embed BaseListener
// and override only the methods they care about.
type Listener interface {
	// Finished reports whether the listener is done and may be evicted.
	// Called by the sweeper after every tick.
	Finished() bool
	// OnTick fires periodically from the sweeper.
	OnTick(ctx context.Context) error
	// OnDeleted fires when the underlying message was deleted.
	OnDeleted(ctx context.Context) error
	// OnReactionAdd fires when a reaction was added to the message.
	OnReactionAdd(ctx context.Context, r Reaction) error
	// OnReactionRemove fires when a reaction was removed from the message.
	OnReactionRemove(ctx context.Context, r Reaction) error
}

// BaseListener provides no-op defaults for every Listener method.
type BaseListener struct{}

func (BaseListener) Finished() bool { return false }

func (BaseListener) OnTick(context.Context) error { return nil }

func (BaseListener) OnDeleted(context.Context) error { return nil }

func (BaseListener) OnReactionAdd(context.Context, Reaction) error { return nil }

func (BaseListener) OnReactionRemove(context.Context, Reaction) error { return nil }

// Handle owns one Listener behind a mutex. All behavioral calls on a listener
// go through Do, so handler methods for the same listener never run
// concurrently with each other; different listeners are fully independent.
type Handle struct {
	mu       sync.Mutex
	listener Listener
}

// NewHandle wraps a listener.
func NewHandle(l Listener) *Handle {
	return &Handle{listener: l}
}

// Do runs fn with exclusive access to the listener. The lock is held for the
// full duration of fn, including any I/O it performs.
func (h *Handle) Do(fn func(l Listener) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.listener)
}
