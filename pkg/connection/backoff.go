package connection

import (
	"math/rand"
	"sync"
	"time"
)

// Backoff defaults for the SecureNotify reconnection policy.
const (
	// InitialBackoff is the initial reconnection delay.
	InitialBackoff = 1 * time.Second

	// MaxBackoff is the maximum reconnection delay.
	MaxBackoff = 30 * time.Second

	// BackoffMultiplier is the factor by which backoff increases.
	BackoffMultiplier = 2.0

	// JitterFactor is the maximum symmetric jitter as a fraction of
	// the base delay (delay varies by ±20%).
	JitterFactor = 0.20
)

// Backoff calculates exponential backoff delays with symmetric jitter.
type Backoff struct {
	mu sync.Mutex

	// Current base delay (before jitter)
	current time.Duration

	// Configuration
	initial    time.Duration
	max        time.Duration
	multiplier float64
	jitter     float64

	// Attempt counter
	attempts int

	// Random source for jitter
	rng *rand.Rand
}

// BackoffConfig allows customizing backoff parameters.
type BackoffConfig struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

// NewBackoff creates a backoff calculator with default settings.
func NewBackoff() *Backoff {
	return NewBackoffWithConfig(BackoffConfig{})
}

// NewBackoffWithConfig creates a backoff calculator with custom settings.
// Zero or invalid fields fall back to the defaults; set Jitter to a
// negative value to disable jitter entirely.
func NewBackoffWithConfig(cfg BackoffConfig) *Backoff {
	if cfg.Initial <= 0 {
		cfg.Initial = InitialBackoff
	}
	if cfg.Max <= 0 {
		cfg.Max = MaxBackoff
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = BackoffMultiplier
	}
	if cfg.Jitter == 0 {
		cfg.Jitter = JitterFactor
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}

	return &Backoff{
		current:    cfg.Initial,
		initial:    cfg.Initial,
		max:        cfg.Max,
		multiplier: cfg.Multiplier,
		jitter:     cfg.Jitter,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the next delay (with jitter) and advances the backoff.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.addJitter(b.current)

	b.attempts++
	next := time.Duration(float64(b.current) * b.multiplier)
	if next > b.max {
		next = b.max
	}
	b.current = next

	return delay
}

// Peek returns the current jittered delay without advancing.
func (b *Backoff) Peek() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addJitter(b.current)
}

// Reset resets the backoff to initial values.
// Call this whenever a stream reaches Active.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.initial
	b.attempts = 0
}

// Attempts returns the number of attempts since the last reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Current returns the current base delay (without jitter).
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// addJitter varies a delay by up to ±jitter fraction.
func (b *Backoff) addJitter(d time.Duration) time.Duration {
	if b.jitter <= 0 {
		return d
	}
	// Uniform in [-jitter, +jitter].
	offset := b.jitter * (2*b.rng.Float64() - 1)
	return d + time.Duration(float64(d)*offset)
}
