package connection

import "time"

// Policy bounds a Backoff with an optional attempt limit.
// MaxAttempts of zero means retry forever.
type Policy struct {
	backoff     *Backoff
	maxAttempts int
}

// PolicyConfig configures a reconnection policy.
type PolicyConfig struct {
	Backoff BackoffConfig

	// MaxAttempts is the attempt budget per outage. Zero means
	// unbounded.
	MaxAttempts int
}

// NewPolicy creates a reconnection policy.
func NewPolicy(cfg PolicyConfig) *Policy {
	return &Policy{
		backoff:     NewBackoffWithConfig(cfg.Backoff),
		maxAttempts: cfg.MaxAttempts,
	}
}

// Next returns the delay before the next reconnection attempt.
// The second return value is false when the attempt budget is
// exhausted; the caller should give up.
func (p *Policy) Next() (time.Duration, bool) {
	if p.maxAttempts > 0 && p.backoff.Attempts() >= p.maxAttempts {
		return 0, false
	}
	return p.backoff.Next(), true
}

// Reset clears the attempt counter and delay. Call on every
// successful (re)connection.
func (p *Policy) Reset() {
	p.backoff.Reset()
}

// Attempts returns the number of attempts since the last reset.
func (p *Policy) Attempts() int {
	return p.backoff.Attempts()
}
