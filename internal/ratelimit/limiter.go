// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"sync"
	"time"

	urlutil "github.com/law-makers/reviewscrape/internal/utils/url"
	"golang.org/x/time/rate"
)

// Pacer spaces out successive requests.
type Pacer interface {
	// Wait blocks until a request for urlStr may proceed, or ctx is done.
	Wait(ctx context.Context, urlStr string) error
	// Done marks the request for urlStr as finished. The next request to
	// the same site is delayed relative to this moment.
	Done(urlStr string)
}

// DomainPacer keeps a fixed pause between the end of one request and the
// start of the next to the same registrable domain. The first request to a
// domain passes immediately.
type DomainPacer struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	delay    time.Duration
}

// NewDomainPacer creates a pacer with the given inter-request delay.
// A delay <= 0 disables pacing.
func NewDomainPacer(delay time.Duration) *DomainPacer {
	return &DomainPacer{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Delay returns the configured inter-request delay
func (p *DomainPacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks until the request for urlStr can proceed
func (p *DomainPacer) Wait(ctx context.Context, urlStr string) error {
	if p == nil || p.delay <= 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	key := siteKey(urlStr)
	if key == "" {
		// Invalid URL, let it proceed (will fail elsewhere)
		return nil
	}

	p.mu.Lock()
	limiter := p.limiters[key]
	p.mu.Unlock()
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// Done restarts the delay for urlStr's domain from now
func (p *DomainPacer) Done(urlStr string) {
	if p == nil || p.delay <= 0 {
		return
	}
	key := siteKey(urlStr)
	if key == "" {
		return
	}

	// burst 1 with the only token spent now: the next Wait passes after delay
	now := time.Now()
	limiter := rate.NewLimiter(rate.Every(p.delay), 1)
	limiter.AllowN(now, 1)

	p.mu.Lock()
	p.limiters[key] = limiter
	p.mu.Unlock()
}

func siteKey(urlStr string) string {
	return urlutil.RegistrableDomain(urlutil.Domain(urlStr))
}
