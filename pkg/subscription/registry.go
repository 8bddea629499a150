package subscription

import (
	"sync"

	"github.com/securenotify/securenotify-go/pkg/log"
	"github.com/securenotify/securenotify-go/pkg/transport"
)

// Registry manages the subscriptions of one client. It enforces one
// subscription per channel and owns subscription lifecycles.
type Registry struct {
	transport transport.Transport
	cfg       Config
	logger    log.Logger

	mu sync.Mutex

	// Live subscriptions by channel
	active map[string]*Subscription

	// Every subscription this registry ever created, for idempotent
	// unsubscribe: stopping an already-stopped subscription is a no-op,
	// while a foreign subscription is rejected.
	owned map[*Subscription]struct{}

	closed bool
}

// NewRegistry creates a subscription registry. A nil logger disables
// diagnostic capture.
func NewRegistry(tr transport.Transport, cfg Config, logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Registry{
		transport: tr,
		cfg:       cfg.withDefaults(),
		logger:    logger,
		active:    make(map[string]*Subscription),
		owned:     make(map[*Subscription]struct{}),
	}
}

// Subscribe attaches handlers to a channel and starts streaming. The call
// returns immediately; the connection proceeds in the background and the
// OnConnected handler fires once the server confirms.
//
// Subscribing to a channel that already has a live subscription returns
// the existing subscription unchanged.
func (r *Registry) Subscribe(channel string, handlers Handlers) (*Subscription, error) {
	if err := ValidateChannel(channel); err != nil {
		return nil, err
	}
	if handlers.OnMessage == nil {
		return nil, ErrMissingHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if existing, ok := r.active[channel]; ok {
		return existing, nil
	}

	sub := newSubscription(r.transport, channel, handlers, r.cfg, r.logger)
	r.active[channel] = sub
	r.owned[sub] = struct{}{}
	sub.start()
	return sub, nil
}

// Unsubscribe terminally stops a subscription. It blocks until the stream
// is closed and the in-flight handler call, if any, has returned.
// Unsubscribing an already-stopped subscription is a no-op; a subscription
// not created by this registry returns ErrNotFound.
func (r *Registry) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrNotFound
	}

	r.mu.Lock()
	if _, ok := r.owned[sub]; !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	if r.active[sub.channel] == sub {
		delete(r.active, sub.channel)
	}
	r.mu.Unlock()

	sub.stop()
	return nil
}

// Get returns the live subscription for a channel, or ErrNotFound.
func (r *Registry) Get(channel string) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.active[channel]
	if !ok {
		return nil, ErrNotFound
	}
	return sub, nil
}

// Count returns the number of live subscriptions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// CloseAll stops every live subscription and marks the registry closed.
// Subsequent Subscribe calls return ErrClosed.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	subs := make([]*Subscription, 0, len(r.active))
	for _, sub := range r.active {
		subs = append(subs, sub)
	}
	r.active = make(map[string]*Subscription)
	r.closed = true
	r.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
}
