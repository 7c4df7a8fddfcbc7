package web

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter allows each client a fixed number of requests per window.
type clientLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*clientEntry
	swept   time.Time
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(requests int, window time.Duration) *clientLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &clientLimiter{
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		ttl:     2 * window,
		now:     time.Now,
		clients: make(map[string]*clientEntry),
	}
}

// Allow reports whether the client identified by id may make another request now.
func (l *clientLimiter) Allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.swept) > l.ttl {
		for k, e := range l.clients {
			if now.Sub(e.lastSeen) > l.ttl {
				delete(l.clients, k)
			}
		}
		l.swept = now
	}

	e, ok := l.clients[id]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[id] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
