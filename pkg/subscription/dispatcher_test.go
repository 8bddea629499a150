package subscription

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/securenotify/securenotify-go/pkg/event"
	"github.com/securenotify/securenotify-go/pkg/log"
)

func TestDispatcherBackpressure(t *testing.T) {
	block := make(chan struct{})
	var delivered atomic.Int32

	d := newDispatcher("sub", "orders", Handlers{
		OnMessage: func(event.Message) {
			<-block
			delivered.Add(1)
		},
	}, 2, log.NoopLogger{})
	d.start()
	defer func() {
		close(block)
		d.stop()
	}()

	// Worker takes the first event and blocks; two more fill the queue.
	for i := 0; i < 3; i++ {
		if !d.enqueue(context.Background(), event.Message{Channel: "orders"}) {
			t.Fatal("enqueue reported stopped")
		}
	}

	// The fourth must block rather than drop.
	blocked := make(chan struct{})
	go func() {
		d.enqueue(context.Background(), event.Message{Channel: "orders"})
		close(blocked)
	}()

	select {
	case <-blocked:
		t.Fatal("enqueue did not block on full queue")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDispatcherStopDiscardsQueue(t *testing.T) {
	block := make(chan struct{})
	entered := make(chan struct{})
	var delivered atomic.Int32

	d := newDispatcher("sub", "orders", Handlers{
		OnMessage: func(event.Message) {
			close(entered)
			<-block
			delivered.Add(1)
		},
	}, 8, log.NoopLogger{})
	d.start()

	for i := 0; i < 5; i++ {
		d.enqueue(context.Background(), event.Message{Channel: "orders"})
	}

	// Wait until the first delivery is in flight, stop, then release it.
	<-entered
	stopDone := make(chan struct{})
	go func() {
		d.stop()
		close(stopDone)
	}()
	time.Sleep(10 * time.Millisecond)
	close(block)
	<-stopDone

	if got := delivered.Load(); got != 1 {
		t.Errorf("delivered %d events, want only the in-flight one", got)
	}

	if d.enqueue(context.Background(), event.Message{Channel: "orders"}) {
		t.Error("enqueue succeeded after stop")
	}
}

func TestDispatcherStopIdempotent(t *testing.T) {
	d := newDispatcher("sub", "orders", Handlers{
		OnMessage: func(event.Message) {},
	}, 4, log.NoopLogger{})
	d.start()

	d.stop()
	d.stop()
}
