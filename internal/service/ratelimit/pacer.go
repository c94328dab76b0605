package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum interval between calls to a shared upstream.
// The keyless primary provider bans IPs that hit it back-to-back, so
// every outbound call waits its turn here first.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the pacing slot is free or ctx is done. The slot is
// reserved before sleeping so concurrent callers queue up rather than
// waking at the same instant.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	wait := p.next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	p.next = now.Add(wait + p.interval)
	p.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
