package finder

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Pacer spaces outbound search calls at least delay apart across all
// workers that share it. It admits one call per interval with no burst.
type Pacer struct {
	delay   time.Duration
	limiter *rate.Limiter
}

// NewPacer creates a Pacer. A non-positive delay admits every call at once.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{delay: delay, limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Acquire blocks until the next call may proceed or ctx is done.
// A nil Pacer never blocks.
func (p *Pacer) Acquire(ctx context.Context) error {
	if p == nil {
		return ctx.Err()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "finder: pacer wait")
	}
	return nil
}

// Delay returns the configured minimum spacing.
func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}
