package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	clock   clockwork.Clock
}

// NewIPRateLimiter allows rps requests per second per IP with the given burst.
func NewIPRateLimiter(rps float64, burst int, clock clockwork.Clock) *IPRateLimiter {
	return &IPRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		clock:   clock,
	}
}

// Allow reports whether ip may make another request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[ip]
	if !ok {
		l.evictIdle(now)
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// evictIdle drops buckets not used within limiterIdleTTL; caller holds mu
func (l *IPRateLimiter) evictIdle(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			abortWithError(c, domain.NewHTTPError(http.StatusTooManyRequests, "too many requests"))
			return
		}
		c.Next()
	}
}
