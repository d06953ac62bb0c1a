package retry

import "time"

const (
	defaultBase = 100 * time.Millisecond
	defaultCap  = 5 * time.Second

	// Delay doubling stops here; shifting further could wrap the duration.
	maxShift = 20
)

// Backoff yields the pause before the next attempt. Attempts are 1-based:
// Next(1) is the delay taken after the first failure.
type Backoff interface {
	Next(attempt int) time.Duration
}

// ExponentialBackoff doubles the delay after every failed attempt. Base
// seeds the first delay (100ms when zero) and Max, when positive, caps
// the growth.
type ExponentialBackoff struct {
	Base time.Duration
	Max  time.Duration
}

func (b ExponentialBackoff) Next(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = defaultBase
	}
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	} else if shift > maxShift {
		shift = maxShift
	}
	d := base << shift
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// DefaultBackoff is the policy callers fall back on when none is
// configured: 100ms doubling up to 5s.
func DefaultBackoff() Backoff {
	return ExponentialBackoff{Base: defaultBase, Max: defaultCap}
}
