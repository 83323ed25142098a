package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Kaushallx0/seatxray/internal/seatxray/entity"
)

const defaultRetryBackoff = 80 * time.Millisecond

type retryClient struct {
	client     Client
	maxRetries int
	backoff    time.Duration
}

// NewRetryClient retries calls that fail with ErrTemporary, doubling the wait each time.
func NewRetryClient(c Client, maxRetries int, backoff time.Duration) Client {
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &retryClient{client: c, maxRetries: maxRetries, backoff: backoff}
}

func (r *retryClient) Name() string {
	return r.client.Name()
}

func (r *retryClient) Search(ctx context.Context, req SearchRequest) (*entity.SearchResponse, error) {
	return withRetry(ctx, r, "search", func() (*entity.SearchResponse, error) {
		return r.client.Search(ctx, req)
	})
}

func (r *retryClient) SeatMaps(ctx context.Context, offers ...entity.Offer) (*entity.SeatMapResponse, error) {
	return withRetry(ctx, r, "seatmaps", func() (*entity.SeatMapResponse, error) {
		return r.client.SeatMaps(ctx, offers...)
	})
}

func withRetry[T any](ctx context.Context, r *retryClient, op string, call func() (T, error)) (T, error) {
	var zero T
	backoff := r.backoff
	for attempt := 0; ; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrTemporary) || attempt == r.maxRetries {
			return zero, err
		}

		slog.WarnContext(ctx, "retrying provider call",
			"provider", r.client.Name(), "op", op, "attempt", attempt+1, "error", err)
		if err := sleepCtx(ctx, backoff); err != nil {
			return zero, err
		}
		backoff *= 2
	}
}
