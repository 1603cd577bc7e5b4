package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Limiter paces repeated actions against a remote host.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Pacer enforces a jittered minimum delay between consecutive actions.
// Time spent working between Wait calls counts toward the delay, so a
// slow action is not penalized twice. The first Wait returns
// immediately.
type Pacer struct {
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
	mu         sync.Mutex
}

// NewPacer builds a pacer delaying between min and max. A max at or
// below min disables the jitter.
func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{
		minDelay: min,
		maxDelay: max,
	}
}

func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.lastAction)
	delay := p.nextDelay()

	if !p.lastAction.IsZero() && elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	p.lastAction = time.Now()
	return nil
}

func (p *Pacer) nextDelay() time.Duration {
	if p.maxDelay <= p.minDelay {
		return p.minDelay
	}
	return p.minDelay + time.Duration(rand.Int63n(int64(p.maxDelay-p.minDelay)))
}
