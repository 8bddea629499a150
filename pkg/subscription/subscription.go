package subscription

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/securenotify/securenotify-go/pkg/connection"
	"github.com/securenotify/securenotify-go/pkg/event"
	"github.com/securenotify/securenotify-go/pkg/log"
	"github.com/securenotify/securenotify-go/pkg/transport"
)

// maxLoggedFrame caps how much frame data is recorded per diagnostic event.
const maxLoggedFrame = 512

// Subscription keeps a server stream open for one channel and delivers its
// events to the registered handlers. Create subscriptions through a
// Registry, not directly.
type Subscription struct {
	id       string
	channel  string
	handlers Handlers

	transport  transport.Transport
	cfg        Config
	logger     log.Logger
	policy     *connection.Policy
	dispatcher *dispatcher

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu          sync.RWMutex
	status      Status
	stream      transport.Stream
	lastEventAt time.Time
}

func newSubscription(tr transport.Transport, channel string, handlers Handlers, cfg Config, logger log.Logger) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.New().String()
	return &Subscription{
		id:         id,
		channel:    channel,
		handlers:   handlers,
		transport:  tr,
		cfg:        cfg,
		logger:     logger,
		policy:     connection.NewPolicy(cfg.Reconnect),
		dispatcher: newDispatcher(id, channel, handlers, cfg.QueueSize, logger),
		ctx:        ctx,
		cancel:     cancel,
		status:     StatusInactive,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Channel returns the channel this subscription is attached to.
func (s *Subscription) Channel() string {
	return s.channel
}

// Status returns the current lifecycle state.
func (s *Subscription) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastEventAt returns when the last well-formed frame arrived.
// The zero time means no frame has been decoded yet.
func (s *Subscription) LastEventAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastEventAt
}

// start launches the stream loop and the dispatch worker.
func (s *Subscription) start() {
	s.setStatus(StatusConnecting, "subscribe")
	s.dispatcher.start()
	s.wg.Add(1)
	go s.run()
}

// run is the stream loop: open, consume, classify the failure, wait,
// repeat. It exits on stop, on authentication failure, or when the retry
// budget is exhausted.
func (s *Subscription) run() {
	defer s.wg.Done()

	for {
		stream, err := s.open()
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			terr := transport.Classify(err)
			s.dispatchError(event.Error{Code: terr.Code(), Message: terr.Error()}, "stream open")
			if terr.Kind == transport.KindAuth {
				// A rejected credential will not heal on its own.
				s.setStatus(StatusInactive, "authentication failed")
				return
			}
			s.setStatus(StatusReconnecting, "connect failed")
			if !s.waitRetry(nil) {
				return
			}
			s.setStatus(StatusConnecting, "retrying")
			continue
		}

		hint, reason, fatal := s.consume(stream)
		if s.ctx.Err() != nil {
			return
		}
		if fatal {
			s.setStatus(StatusInactive, reason)
			return
		}
		s.setStatus(StatusReconnecting, reason)
		if !s.waitRetry(hint) {
			return
		}
		s.setStatus(StatusConnecting, "retrying")
	}
}

// open dials a new stream, bounding the attempt with the connect timeout.
func (s *Subscription) open() (transport.Stream, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.ConnectTimeout)
	defer cancel()

	stream, err := s.transport.OpenStream(ctx, s.channel)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stream = stream
	s.mu.Unlock()

	// stop may have snapshotted a nil stream while the dial was in
	// flight; close the fresh one so shutdown never waits on it.
	if err := s.ctx.Err(); err != nil {
		stream.Close()
		s.mu.Lock()
		s.stream = nil
		s.mu.Unlock()
		return nil, err
	}
	return stream, nil
}

// consume reads frames from the stream until it fails or goes silent.
// It returns the server's retry hint (if any), a reason for the exit,
// and whether the failure is fatal (no retry).
func (s *Subscription) consume(stream transport.Stream) (hint *time.Duration, reason string, fatal bool) {
	defer func() {
		s.mu.Lock()
		s.stream = nil
		s.mu.Unlock()
		stream.Close()
	}()

	// Until the connected event arrives the watchdog runs on the connect
	// timeout; afterwards any frame within twice the heartbeat interval
	// counts as liveness. Firing closes the stream, which surfaces as a
	// read error below.
	deadline := s.cfg.ConnectTimeout
	watchdog := time.AfterFunc(deadline, func() { stream.Close() })
	defer watchdog.Stop()

	decodeFailures := 0
	for {
		data, err := stream.ReadFrame()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil, "stopped", false
			}
			hint := streamRetryHint(stream)
			if errors.Is(err, io.EOF) {
				return hint, "end of stream", false
			}
			if errors.Is(err, transport.ErrStreamClosed) {
				return hint, "stream went silent", false
			}
			terr := transport.Classify(err)
			s.dispatchError(event.Error{Code: terr.Code(), Message: terr.Error()}, "stream read")
			if terr.Kind == transport.KindAuth {
				// Mid-stream credential rejection is as final as one
				// at dial time.
				return nil, "authentication failed", true
			}
			return hint, "read error", false
		}
		watchdog.Reset(deadline)
		s.logFrame(stream.ID(), data)

		ev, err := event.Decode(data)
		if err != nil {
			decodeFailures++
			s.dispatchError(event.Error{Code: event.CodeDecodeError, Message: err.Error()}, "frame decode")
			if decodeFailures >= s.cfg.MaxDecodeFailures {
				return streamRetryHint(stream), "consecutive decode failures", false
			}
			continue
		}
		decodeFailures = 0

		s.mu.Lock()
		s.lastEventAt = time.Now()
		s.mu.Unlock()

		if _, ok := ev.(event.Connected); ok {
			deadline = 2 * s.cfg.HeartbeatInterval
			watchdog.Reset(deadline)
			s.policy.Reset()
			s.setStatus(StatusActive, "connected event received")
		}

		if !s.dispatcher.enqueue(s.ctx, ev) {
			return nil, "stopped", false
		}
	}
}

// waitRetry sleeps for the next backoff delay. A server retry hint
// overrides the computed delay but still consumes an attempt. Returns
// false when the subscription should not retry again.
func (s *Subscription) waitRetry(hint *time.Duration) bool {
	delay, ok := s.policy.Next()
	if !ok {
		s.dispatchError(event.Error{
			Code:    event.CodeGiveUp,
			Message: "reconnect attempts exhausted",
		}, "reconnect")
		s.setStatus(StatusInactive, "gave up")
		return false
	}
	if hint != nil {
		delay = *hint
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// stop terminates the subscription: the stream loop exits, the in-flight
// handler call finishes, and queued events are discarded. Safe to call
// multiple times; blocks until shutdown completes.
func (s *Subscription) stop() {
	s.stopOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		stream := s.stream
		s.mu.Unlock()
		if stream != nil {
			stream.Close()
		}

		s.wg.Wait()
		s.dispatcher.stop()
		s.setStatus(StatusInactive, "unsubscribed")
	})
}

func (s *Subscription) setStatus(st Status, reason string) {
	s.mu.Lock()
	old := s.status
	s.status = st
	s.mu.Unlock()

	if old == st {
		return
	}
	attempt := s.policy.Attempts()
	s.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SubscriptionID: s.id,
		Channel:        s.channel,
		Category:       log.CategoryState,
		State: &log.StateChangeEvent{
			OldState: old.String(),
			NewState: st.String(),
			Reason:   reason,
			Attempt:  &attempt,
		},
	})
}

// dispatchError records the error in the diagnostic trace and delivers it
// to the OnError handler through the dispatch queue.
func (s *Subscription) dispatchError(e event.Error, opContext string) {
	code := int(e.Code)
	s.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SubscriptionID: s.id,
		Channel:        s.channel,
		Category:       log.CategoryError,
		Error: &log.ErrorEventData{
			Message: e.Message,
			Code:    &code,
			Context: opContext,
		},
	})
	s.dispatcher.enqueue(s.ctx, e)
}

func (s *Subscription) logFrame(streamID string, data []byte) {
	frame := &log.FrameEvent{Size: len(data)}
	if len(data) > maxLoggedFrame {
		frame.Data = data[:maxLoggedFrame]
		frame.Truncated = true
	} else {
		frame.Data = data
	}
	s.logger.Log(log.Event{
		Timestamp:      time.Now(),
		SubscriptionID: s.id,
		Channel:        s.channel,
		Category:       log.CategoryFrame,
		StreamID:       streamID,
		Frame:          frame,
	})
}

// streamRetryHint extracts the server's reconnect delay hint, if the
// transport surfaces one.
func streamRetryHint(stream transport.Stream) *time.Duration {
	if h, ok := stream.(transport.RetryHinter); ok {
		if d, ok := h.RetryHint(); ok {
			return &d
		}
	}
	return nil
}
