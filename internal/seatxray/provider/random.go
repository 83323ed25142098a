package provider

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

type SafeRand struct{}

func NewSafeRand() *SafeRand {
	return &SafeRand{}
}

func (s *SafeRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	value, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(value.Int64())
}

// Between returns a duration in [min, max].
func (s *SafeRand) Between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.Intn(int(max-min)+1))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
