package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"golang.org/x/time/rate"
)

const localLimiterSweepInterval = time.Minute

// LocalRateLimiter is an in-process RequestRateLimiter, used when redis is not configured.
// Limits are kept per key and are not shared between service instances.
// Keys idle long enough for their bucket to refill are evicted, so memory
// follows the number of recently active clients.
type LocalRateLimiter struct {
	mutex     sync.Mutex
	limiters  map[string]*localLimiterEntry
	lastSweep time.Time
	now       func() time.Time
}

type localLimiterEntry struct {
	limiter *rate.Limiter
	// a bucket untouched for refillAfter is full again, same as a new one
	refillAfter time.Duration
	lastSeen    time.Time
}

func NewLocalRateLimiter() *LocalRateLimiter {
	return &LocalRateLimiter{
		limiters: make(map[string]*localLimiterEntry),
		now:      time.Now,
	}
}

func (l *LocalRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	now := l.now()
	limiter := l.limiterFor(key, limit, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return &redis_rate.Result{Limit: limit, RetryAfter: -1, ResetAfter: limit.Period}, nil
	}

	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return &redis_rate.Result{
			Limit:      limit,
			Allowed:    0,
			Remaining:  0,
			RetryAfter: delay,
			ResetAfter: limit.Period,
		}, nil
	}

	return &redis_rate.Result{
		Limit:      limit,
		Allowed:    1,
		Remaining:  int(limiter.TokensAt(now)),
		RetryAfter: -1,
		ResetAfter: limit.Period,
	}, nil
}

func (l *LocalRateLimiter) limiterFor(key string, limit redis_rate.Limit, now time.Time) *rate.Limiter {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if now.Sub(l.lastSweep) >= localLimiterSweepInterval {
		l.evictIdle(now)
		l.lastSweep = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		every := rate.Inf
		if limit.Rate > 0 && limit.Period > 0 {
			every = rate.Limit(float64(limit.Rate) / limit.Period.Seconds())
		}
		burst := limit.Burst
		if burst <= 0 {
			burst = 1
		}
		var refillAfter time.Duration
		if every != rate.Inf {
			refillAfter = time.Duration(float64(burst) / float64(every) * float64(time.Second))
		}
		entry = &localLimiterEntry{
			limiter:     rate.NewLimiter(every, burst),
			refillAfter: refillAfter,
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *LocalRateLimiter) evictIdle(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= entry.refillAfter {
			delete(l.limiters, key)
		}
	}
}
