package source

import (
	"context"
	"repopulse/internal/structures"
	"time"
)

type FixedDelay struct {
	delay time.Duration
}

func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{delay: delay}
}

func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}

func NewLimiter(conf *structures.Config) Limiter {
	if conf.Pipeline.Delay <= 0 {
		return NoDelay{}
	}
	return NewFixedDelay(conf.Pipeline.Delay)
}
