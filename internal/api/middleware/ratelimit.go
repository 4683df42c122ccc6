package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP. Stale entries are
// dropped on the fly so the map does not grow without bound.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const visitorTTL = 10 * time.Minute

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok {
		for addr, vis := range l.visitors {
			if now.Sub(vis.lastSeen) > visitorTTL {
				delete(l.visitors, addr)
			}
		}
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// RateLimit throttles per client IP. Applied to the auth endpoints so a
// single client cannot hammer signup into sending unbounded email.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := newIPLimiter(rps, burst)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
