package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Decode errors.
var (
	// ErrEmptyFrame indicates a zero-length frame.
	ErrEmptyFrame = errors.New("empty frame")

	// ErrUnknownType indicates a frame with an unrecognized type tag.
	ErrUnknownType = errors.New("unknown event type")

	// ErrMissingField indicates a frame without a field its type requires.
	ErrMissingField = errors.New("missing required field")
)

// frame is the wire shape of one server-pushed frame.
// Optional fields are pointers so presence can be validated.
type frame struct {
	Type      string  `json:"type"`
	Channel   string  `json:"channel"`
	Payload   *string `json:"payload"`
	Code      *int32  `json:"code"`
	Message   *string `json:"message"`
	Timestamp *int64  `json:"timestamp"`
}

// Decode parses one raw frame into an Event.
//
// The frame must be a JSON object carrying a known "type" tag and the
// fields that type requires. Timestamps are Unix milliseconds; when
// absent, the local decode time is used.
func Decode(data []byte) (Event, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}

	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("frame decode: %w", err)
	}

	switch f.Type {
	case "message":
		if f.Channel == "" {
			return nil, fmt.Errorf("%w: channel", ErrMissingField)
		}
		if f.Payload == nil {
			return nil, fmt.Errorf("%w: payload", ErrMissingField)
		}
		receivedAt := time.Now()
		if f.Timestamp != nil {
			receivedAt = time.UnixMilli(*f.Timestamp)
		}
		return Message{
			Channel:    f.Channel,
			Payload:    *f.Payload,
			ReceivedAt: receivedAt,
		}, nil

	case "connected":
		if f.Channel == "" {
			return nil, fmt.Errorf("%w: channel", ErrMissingField)
		}
		return Connected{Channel: f.Channel}, nil

	case "heartbeat":
		if f.Channel == "" {
			return nil, fmt.Errorf("%w: channel", ErrMissingField)
		}
		return Heartbeat{Channel: f.Channel}, nil

	case "error":
		if f.Code == nil {
			return nil, fmt.Errorf("%w: code", ErrMissingField)
		}
		msg := ""
		if f.Message != nil {
			msg = *f.Message
		}
		return Error{Code: Code(*f.Code), Message: msg}, nil

	case "":
		return nil, fmt.Errorf("%w: type", ErrMissingField)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, f.Type)
	}
}
