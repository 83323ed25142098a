package provider

import (
	"context"
	"sync"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

type rateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	for {
		now := time.Now()
		r.mu.Lock()
		if r.last.IsZero() || now.Sub(r.last) >= r.interval {
			r.last = now
			r.mu.Unlock()
			return nil
		}
		wait := r.interval - now.Sub(r.last)
		r.mu.Unlock()
		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// rateLimitedClient spaces outbound calls; search and seat map requests share one budget.
type rateLimitedClient struct {
	client  Client
	limiter *rateLimiter
}

func NewRateLimitedClient(c Client, interval time.Duration) Client {
	return &rateLimitedClient{
		client:  c,
		limiter: newRateLimiter(interval),
	}
}

func (r *rateLimitedClient) Name() string {
	return r.client.Name()
}

func (r *rateLimitedClient) Search(ctx context.Context, req SearchRequest) (*entity.SearchResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.client.Search(ctx, req)
}

func (r *rateLimitedClient) SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.client.SeatMaps(ctx, offers...)
}
