package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes diagnostic events to an slog.Logger.
// Useful for development when you want to see engine events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("sub_id", event.SubscriptionID),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.Channel != "" {
		attrs = append(attrs, slog.String("channel", event.Channel))
	}
	if event.StreamID != "" {
		attrs = append(attrs, slog.String("stream_id", event.StreamID))
	}

	// Add type-specific attributes
	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.State != nil:
		attrs = append(attrs,
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
		if event.State.Attempt != nil {
			attrs = append(attrs, slog.Int("attempt", *event.State.Attempt))
		}
	case event.Dispatch != nil:
		attrs = append(attrs,
			slog.String("kind", event.Dispatch.Kind),
			slog.Bool("panicked", event.Dispatch.Panicked),
		)
		if event.Dispatch.QueueDepth > 0 {
			attrs = append(attrs, slog.Int("queue_depth", event.Dispatch.QueueDepth))
		}
		if event.Dispatch.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Dispatch.Duration))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "subscription", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
