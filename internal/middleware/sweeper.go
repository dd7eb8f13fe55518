package middleware

import (
	"context"
	"time"
)

// Sweeper adapts the rate limiter's periodic cleanup to the system lifecycle.
type Sweeper struct {
	limiter  *RateLimiter
	interval time.Duration
	stop     chan struct{}
}

// NewSweeper creates a lifecycle-managed cleanup loop for rl.
func NewSweeper(rl *RateLimiter, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{limiter: rl, interval: interval, stop: make(chan struct{})}
}

// Name implements system.Service.
func (s *Sweeper) Name() string { return "ratelimit-sweeper" }

// Start implements system.Service.
func (s *Sweeper) Start(ctx context.Context) error {
	s.limiter.StartCleanup(s.interval, s.stop)
	return nil
}

// Stop implements system.Service.
func (s *Sweeper) Stop(ctx context.Context) error {
	close(s.stop)
	return nil
}
