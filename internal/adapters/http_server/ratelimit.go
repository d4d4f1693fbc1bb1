package httpserver

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdle       = 10 * time.Minute
	limiterMaxClients = 10000
)

type clientBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter keeps one token bucket per client key (the remote IP), so a
// noisy client cannot exhaust the budget of everyone else.
type ClientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*clientBucket
	now     func() time.Time
}

func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limit:   limit,
		burst:   burst,
		clients: map[string]*clientBucket{},
		now:     time.Now,
	}
}

func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= limiterMaxClients {
			l.sweep(now)
		}
		b = &clientBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets. If every bucket is still active the table is
// reset rather than allowed to grow without bound.
func (l *ClientLimiter) sweep(now time.Time) {
	for k, b := range l.clients {
		if now.Sub(b.seen) > limiterIdle {
			delete(l.clients, k)
		}
	}
	if len(l.clients) >= limiterMaxClients {
		l.clients = map[string]*clientBucket{}
	}
}

func (l *ClientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
