// Package retry retries startup dependencies with exponential backoff.
// Upstream HirePay calls are never retried; a failed mutation is left to the user.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// Config defines retry behavior with exponential backoff
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	JitterFactor float64 // 0.0-1.0, +/- share of the delay
}

// DefaultConfig returns the backoff used while waiting for Redis at startup:
// 5 retries from 200ms, doubling, capped at 5s, with 10% jitter.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   5,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// applyJitter returns delay +/- (delay * jitterFactor * random(-1 to +1)).
func applyJitter(delay time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return delay
	}
	jitter := float64(delay) * jitterFactor * (rand.Float64()*2 - 1)
	return time.Duration(float64(delay) + jitter)
}

// Do calls fn until it succeeds or MaxRetries retries are spent, and returns the last
// error. onRetry, when set, sees each failure that will be retried.
// Cancelling ctx stops the wait and returns ctx.Err().
func Do(ctx context.Context, cfg *Config, fn func() error, onRetry func(attempt int, err error)) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	delay := cfg.InitialDelay
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == cfg.MaxRetries {
			break
		}
		if onRetry != nil {
			onRetry(attempt+1, lastErr)
		}

		timer := time.NewTimer(applyJitter(delay, cfg.JitterFactor))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return lastErr
}
