package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

// writeTrace writes a small trace file and returns its path.
func writeTrace(t *testing.T, events []Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trace.snlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, ev := range events {
		logger.Log(ev)
	}
	logger.Close()
	return path
}

func TestReaderReadsAll(t *testing.T) {
	path := writeTrace(t, []Event{
		{SubscriptionID: "a", Category: CategoryFrame, Frame: &FrameEvent{Size: 1}},
		{SubscriptionID: "a", Category: CategoryState, State: &StateChangeEvent{NewState: "ACTIVE"}},
		{SubscriptionID: "b", Category: CategoryError, Error: &ErrorEventData{Message: "boom"}},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 3 {
		t.Errorf("got %d events, want 3", count)
	}
}

func TestReaderFilterBySubscription(t *testing.T) {
	path := writeTrace(t, []Event{
		{SubscriptionID: "a", Category: CategoryFrame, Frame: &FrameEvent{Size: 1}},
		{SubscriptionID: "b", Category: CategoryFrame, Frame: &FrameEvent{Size: 2}},
		{SubscriptionID: "a", Category: CategoryFrame, Frame: &FrameEvent{Size: 3}},
	})

	reader, err := NewFilteredReader(path, Filter{SubscriptionID: "a"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var sizes []int
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		sizes = append(sizes, ev.Frame.Size)
	}

	if len(sizes) != 2 || sizes[0] != 1 || sizes[1] != 3 {
		t.Errorf("got sizes %v, want [1 3]", sizes)
	}
}

func TestReaderFilterByCategory(t *testing.T) {
	path := writeTrace(t, []Event{
		{SubscriptionID: "a", Category: CategoryFrame, Frame: &FrameEvent{Size: 1}},
		{SubscriptionID: "a", Category: CategoryError, Error: &ErrorEventData{Message: "x"}},
		{SubscriptionID: "a", Category: CategoryDispatch, Dispatch: &DispatchEvent{Kind: "message"}},
	})

	cat := CategoryError
	reader, err := NewFilteredReader(path, Filter{Category: &cat})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	ev, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.Error == nil || ev.Error.Message != "x" {
		t.Errorf("unexpected event: %+v", ev)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	path := writeTrace(t, []Event{
		{Timestamp: base, SubscriptionID: "a", Category: CategoryState, State: &StateChangeEvent{NewState: "CONNECTING"}},
		{Timestamp: base.Add(time.Minute), SubscriptionID: "a", Category: CategoryState, State: &StateChangeEvent{NewState: "ACTIVE"}},
		{Timestamp: base.Add(2 * time.Minute), SubscriptionID: "a", Category: CategoryState, State: &StateChangeEvent{NewState: "INACTIVE"}},
	})

	start := base.Add(30 * time.Second)
	end := base.Add(90 * time.Second)
	reader, err := NewFilteredReader(path, Filter{TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	ev, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if ev.State.NewState != "ACTIVE" {
		t.Errorf("got state %q, want ACTIVE", ev.State.NewState)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.snlog")); err == nil {
		t.Error("expected error for missing file")
	}
}
