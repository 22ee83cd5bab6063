package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues failed calls with capped exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p so transient failures are retried per cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

type verdict int

const (
	stop verdict = iota
	again
	againOnce
)

// classify decides whether err is worth another attempt. Schema failures
// get a single second chance since a fresh sample often fixes them.
func classify(err error) verdict {
	var (
		maxTok   *ErrMaxTokensExceeded
		rejected *ErrRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return stop
	case errors.As(err, &maxTok), errors.As(err, &rejected):
		return stop
	case errors.As(err, &invalid):
		return againOnce
	default:
		return again
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		usedInvalid bool
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(r.delay(attempt-1, err))
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case stop:
			return nil, err
		case againOnce:
			if usedInvalid {
				return nil, err
			}
			usedInvalid = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// delay is the pause before retry n (0-based). A vendor Retry-After wins;
// otherwise InitialWait grows by Multiplier up to MaxWait with ±20% jitter.
func (r *RetryProvider) delay(n int, cause error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(cause, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range n {
		d *= r.config.Multiplier
	}
	if limit := float64(r.config.MaxWait); limit > 0 && d > limit {
		d = limit
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
