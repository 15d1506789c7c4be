package worker

import "time"

// Defaults for a Pool.
const (
	DefaultMaxConcurrent = 3
	DefaultTimeout       = 30 * time.Second
)

// Option configures a Pool during creation.
//
// Example:
//
//	pool, err := worker.NewPool(worker.InProcess{},
//	    worker.WithMaxConcurrent(4),
//	    worker.WithTimeout(10*time.Second))
type Option func(*options)

// options holds optional configuration for Pool creation.
type options struct {
	maxConcurrent int
	timeout       time.Duration
	cacheEntries  int
}

func defaultOptions() options {
	return options{
		maxConcurrent: DefaultMaxConcurrent,
		timeout:       DefaultTimeout,
	}
}

// WithMaxConcurrent sets how many jobs may run at once. Values below 1
// are ignored.
func WithMaxConcurrent(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxConcurrent = n
		}
	}
}

// WithTimeout sets the hard wall-clock limit of one job, measured from
// admission. Values <= 0 are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithCache keeps up to n rendered images keyed by their parameters and
// serves repeated requests from memory. Rendering is deterministic, so a
// hit is identical to a fresh render. n <= 0 disables the cache.
func WithCache(n int) Option {
	return func(o *options) {
		o.cacheEntries = max(0, n)
	}
}
