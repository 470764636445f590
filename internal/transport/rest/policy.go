package rest

import "time"

// Retry defaults tuned for a tunneled backend that intermittently 502s.
const (
	DefaultMaxAttempts  = 3
	DefaultBackoff      = 500 * time.Millisecond
	DefaultShortTimeout = 5 * time.Second
	DefaultLongTimeout  = 30 * time.Second
)

// Policy bounds one logical backend call: attempt count, backoff base,
// per-attempt timeout, and the status codes worth retrying.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
	Retryable   map[int]bool
}

// DefaultRetryable returns the transient-server status set.
func DefaultRetryable() map[int]bool {
	return map[int]bool{502: true, 503: true, 504: true}
}

// normalize fills zero fields with defaults.
func (p Policy) normalize() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Backoff <= 0 {
		p.Backoff = DefaultBackoff
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultShortTimeout
	}
	if p.Retryable == nil {
		p.Retryable = DefaultRetryable()
	}
	return p
}

// delay returns the sleep before the attempt following the given one.
// Linear in the attempt number, so the sequence never decreases.
func (p Policy) delay(attempt int) time.Duration {
	return p.Backoff * time.Duration(attempt)
}

// retryableStatus reports whether a status code is transient under this policy.
func (p Policy) retryableStatus(code int) bool {
	return p.Retryable[code]
}
