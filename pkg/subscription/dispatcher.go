package subscription

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/securenotify/securenotify-go/pkg/event"
	"github.com/securenotify/securenotify-go/pkg/log"
)

// dispatcher serializes handler invocations for one subscription.
// Events pass through a bounded queue to a single worker goroutine,
// preserving stream order and isolating slow handlers from the read loop
// of other subscriptions.
type dispatcher struct {
	subID    string
	channel  string
	handlers Handlers
	logger   log.Logger

	queue    chan event.Event
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newDispatcher(subID, channel string, handlers Handlers, queueSize int, logger log.Logger) *dispatcher {
	return &dispatcher{
		subID:    subID,
		channel:  channel,
		handlers: handlers,
		logger:   logger,
		queue:    make(chan event.Event, queueSize),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// start launches the worker goroutine.
func (d *dispatcher) start() {
	go d.loop()
}

func (d *dispatcher) loop() {
	defer close(d.done)
	for {
		// Stop takes priority over queued events, which are discarded.
		select {
		case <-d.stopCh:
			return
		default:
		}
		select {
		case <-d.stopCh:
			return
		case ev := <-d.queue:
			d.deliver(ev)
		}
	}
}

// enqueue adds an event to the dispatch queue, blocking when the queue is
// full. This backpressure stalls the stream read loop rather than dropping
// events. Returns false if the dispatcher stopped or ctx was canceled
// while waiting.
func (d *dispatcher) enqueue(ctx context.Context, ev event.Event) bool {
	select {
	case <-d.stopCh:
		return false
	case <-ctx.Done():
		return false
	default:
	}
	select {
	case d.queue <- ev:
		return true
	case <-d.stopCh:
		return false
	case <-ctx.Done():
		return false
	}
}

// deliver invokes the handler for one event, recovering panics so a
// misbehaving handler cannot kill the worker or the stream.
func (d *dispatcher) deliver(ev event.Event) {
	start := time.Now()
	panicked := false

	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				d.logger.Log(log.Event{
					Timestamp:      time.Now(),
					SubscriptionID: d.subID,
					Channel:        d.channel,
					Category:       log.CategoryError,
					Error: &log.ErrorEventData{
						Message: fmt.Sprintf("handler panic: %v", r),
						Context: "dispatch " + ev.Kind(),
					},
				})
			}
		}()

		switch e := ev.(type) {
		case event.Message:
			if d.handlers.OnMessage != nil {
				d.handlers.OnMessage(e)
			}
		case event.Connected:
			if d.handlers.OnConnected != nil {
				d.handlers.OnConnected(e)
			}
		case event.Heartbeat:
			if d.handlers.OnHeartbeat != nil {
				d.handlers.OnHeartbeat(e)
			}
		case event.Error:
			if d.handlers.OnError != nil {
				d.handlers.OnError(e)
			}
		}
	}()

	duration := time.Since(start)
	d.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SubscriptionID: d.subID,
		Channel:        d.channel,
		Category:       log.CategoryDispatch,
		Dispatch: &log.DispatchEvent{
			Kind:       ev.Kind(),
			QueueDepth: len(d.queue),
			Duration:   &duration,
			Panicked:   panicked,
		},
	})
}

// stop shuts the worker down. The in-flight handler call, if any, runs to
// completion; queued events are discarded. stop blocks until the worker
// has exited and is safe to call multiple times.
func (d *dispatcher) stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
	})
	<-d.done
}
