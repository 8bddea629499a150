package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogAdapterWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		Timestamp:      time.Now(),
		SubscriptionID: "sub-abc",
		Channel:        "orders",
		Category:       CategoryState,
		State: &StateChangeEvent{
			OldState: "CONNECTING",
			NewState: "ACTIVE",
			Reason:   "connected event received",
		},
	})

	out := buf.String()
	for _, want := range []string{"sub-abc", "orders", "STATE", "CONNECTING", "ACTIVE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	code := 1001
	adapter.Log(Event{
		Timestamp:      time.Now(),
		SubscriptionID: "sub-err",
		Category:       CategoryError,
		Error: &ErrorEventData{
			Message: "authentication failed",
			Code:    &code,
			Context: "stream open",
		},
	})

	out := buf.String()
	if !strings.Contains(out, "authentication failed") {
		t.Errorf("output missing error message: %s", out)
	}
	if !strings.Contains(out, "1001") {
		t.Errorf("output missing error code: %s", out)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	// Info level filters out the Debug events the adapter emits
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		SubscriptionID: "sub-quiet",
		Category:       CategoryFrame,
		Frame:          &FrameEvent{Size: 10},
	})

	if buf.Len() != 0 {
		t.Errorf("expected no output at Info level, got: %s", buf.String())
	}
}
