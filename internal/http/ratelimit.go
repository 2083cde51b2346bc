package http

import (
	"golang.org/x/time/rate"
)

// limiter gates every route with a shared token bucket. A zero rate disables
// it.
type limiter struct {
	bucket *rate.Limiter
}

func newLimiter(perSecond float64, burst int) *limiter {
	if perSecond <= 0 {
		return &limiter{}
	}
	if burst <= 0 {
		burst = max(int(perSecond), 1)
	}
	return &limiter{bucket: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *limiter) allow() bool {
	if l == nil || l.bucket == nil {
		return true
	}
	return l.bucket.Allow()
}
