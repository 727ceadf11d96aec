package dgmenu

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Dispatcher fans heterogeneous notifications out to kind-keyed callbacks.
//
// Registration is append-only and meant to happen at setup time, before events
// start flowing; there is no deregistration.
type Dispatcher struct {
	mu        sync.RWMutex
	callbacks map[Kind][]func(ctx context.Context, ev Event) error
	wg        sync.WaitGroup
	logger    *slog.Logger
}

// NewDispatcher creates an empty dispatcher logging through logger.
// A nil logger falls back to slog.Default.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		callbacks: make(map[Kind][]func(ctx context.Context, ev Event) error),
		logger:    logger,
	}
}

// On registers a statically-typed callback for the event type T.
// The kind is taken from T's zero value.
func On[T Event](d *Dispatcher, fn func(ctx context.Context, ev T) error) {
	var zero T
	d.add(zero.Kind(), func(ctx context.Context, ev Event) error {
		typed, ok := ev.(T)
		if !ok {
			return fmt.Errorf("dgmenu: event kind %q carries %T, want %T", ev.Kind(), ev, zero)
		}
		return fn(ctx, typed)
	})
}

func (d *Dispatcher) add(k Kind, fn func(ctx context.Context, ev Event) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callbacks[k] = append(d.callbacks[k], fn)
}

// Dispatch invokes every callback registered for the event's kind.
//
// Dispatch is detach-and-forget: each callback runs in its own goroutine and
// Dispatch returns without waiting for any of them. Callback errors and panics
// are logged and never propagated; one failing callback cannot prevent the
// others from running. Events with no registered callbacks are dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	d.mu.RLock()
	cbs := d.callbacks[ev.Kind()]
	d.mu.RUnlock()

	for _, cb := range cbs {
		d.wg.Add(1)
		go func(fn func(ctx context.Context, ev Event) error) {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("panic in event callback",
						"kind", ev.Kind(), "panic", r, "stack", string(debug.Stack()))
				}
			}()
			if err := fn(ctx, ev); err != nil {
				d.logger.Error("event callback failed", "kind", ev.Kind(), "error", err)
			}
		}(cb)
	}
}

// wait blocks until all in-flight callbacks have returned.
func (d *Dispatcher) wait() {
	d.wg.Wait()
}
