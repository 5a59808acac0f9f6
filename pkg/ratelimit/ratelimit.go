package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// TokenLimiter enforces a token-per-minute budget, for APIs billed by
// token count rather than request count.
type TokenLimiter struct {
	limiter *rate.Limiter
}

// NewTokenLimiter creates a limiter that refills maxTokenPerMinute
// tokens over each minute, with a burst of one full minute.
func NewTokenLimiter(maxTokenPerMinute int) *TokenLimiter {
	perSecond := rate.Limit(float64(maxTokenPerMinute) / 60.0)
	return &TokenLimiter{
		limiter: rate.NewLimiter(perSecond, maxTokenPerMinute),
	}
}

// Wait blocks until the given number of tokens is available or the
// context is canceled.
func (t *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	return t.limiter.WaitN(ctx, tokens)
}

// GetRemaining reports the tokens currently available.
func (t *TokenLimiter) GetRemaining() int {
	return int(t.limiter.Tokens())
}
