package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider spaces requests to a Client so that text and image
// calls together stay under a per-minute budget. A full minute's budget may
// be spent in a burst; after that one request is earned every 60s/rpm.
type RateLimitedProvider struct {
	next Client

	// interval is the time it takes to earn back one request. Zero means
	// unlimited.
	interval time.Duration
	burst    float64

	mu        sync.Mutex
	available float64
	updated   time.Time
}

// NewRateLimitedProvider limits provider to rpm requests per minute. A
// non-positive rpm disables limiting.
func NewRateLimitedProvider(provider Client, rpm int) Client {
	r := &RateLimitedProvider{next: provider, updated: time.Now()}
	if rpm > 0 {
		r.interval = time.Minute / time.Duration(rpm)
		r.burst = float64(rpm)
		r.available = r.burst
	}
	return r
}

func (r *RateLimitedProvider) Name() string {
	return r.next.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Complete(ctx, req)
}

func (r *RateLimitedProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.next.GenerateImage(ctx, req)
}

// take spends one request if one is available and otherwise returns how
// long until the next one is earned.
func (r *RateLimitedProvider) take() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.available += float64(now.Sub(r.updated)) / float64(r.interval)
	if r.available > r.burst {
		r.available = r.burst
	}
	r.updated = now

	if r.available >= 1 {
		r.available--
		return 0
	}
	return time.Duration((1 - r.available) * float64(r.interval))
}

// wait blocks until a request may be sent or ctx ends. After sleeping it
// tries again, since a concurrent caller may have taken the request first.
func (r *RateLimitedProvider) wait(ctx context.Context) error {
	if r.interval == 0 {
		return ctx.Err()
	}
	for {
		delay := r.take()
		if delay == 0 {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
