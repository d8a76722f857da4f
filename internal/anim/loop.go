package anim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/flakesim/internal/config"
)

// Run owns c for its lifetime: each tick becomes a Frame stamped with the
// time since the first tick, each submission becomes a Submit. It returns
// when ctx is done, ticks is closed, or the controller halts.
func Run(ctx context.Context, c *Controller, ticks <-chan time.Time, submits <-chan config.Form) error {
	var start time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-ticks:
			if !ok {
				return nil
			}
			if start.IsZero() {
				start = t
			}
			if !c.Frame(t.Sub(start)) {
				return fmt.Errorf("%w: %w", ErrHalted, c.Err())
			}
		case f, ok := <-submits:
			if !ok {
				submits = nil
				continue
			}
			_ = c.Submit(f)
		}
	}
}

// RunTicker is Run driven by a ticker at the given host rate.
func RunTicker(ctx context.Context, c *Controller, rate time.Duration, submits <-chan config.Form) error {
	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	return Run(ctx, c, ticker.C, submits)
}
