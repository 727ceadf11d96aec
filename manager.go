package dgmenu

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Timeout presets for menus and ephemeral messages.
const (
	ShortTimeout     = 5 * time.Second
	MediumTimeout    = 20 * time.Second
	LongTimeout      = 60 * time.Second
	ExtraLongTimeout = 600 * time.Second
)

// Manager owns the process-wide state of the library: the listener registry,
// the event dispatcher and the periodic sweeper, plus the platform client all
// of them drive. Construct one at startup and pass it to everything that needs
// it; one process owns one Manager.
type Manager struct {
	client        MessagingClient
	registry      *Registry
	dispatcher    *Dispatcher
	logger        *slog.Logger
	sweepInterval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	sweeping atomic.Bool
}

// New creates a Manager around the given client and wires the default event
// routes. Returns ErrUninitialized if client is nil.
func New(client MessagingClient, opts ...Option) (*Manager, error) {
	if client == nil {
		return nil, ErrUninitialized
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		client:        client,
		registry:      NewRegistry(),
		sweepInterval: DefaultSweepInterval,
		stop:          make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.dispatcher = NewDispatcher(m.logger)
	m.registerDefaultRoutes()

	return m, nil
}

// Client returns the platform client.
func (m *Manager) Client() MessagingClient { return m.client }

// Registry returns the listener registry.
func (m *Manager) Registry() *Registry { return m.registry }

// Dispatcher returns the event dispatcher, for registering custom callbacks.
func (m *Manager) Dispatcher() *Dispatcher { return m.dispatcher }

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Dispatch routes one notification through the dispatcher.
func (m *Manager) Dispatch(ctx context.Context, ev Event) {
	m.dispatcher.Dispatch(ctx, ev)
}

// Stop shuts down the sweeper and waits for in-flight event callbacks to
// finish. Safe to call multiple times.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		close(m.stop)
	})
	m.dispatcher.wait()
}
