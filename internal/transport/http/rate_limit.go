package http

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL    = time.Hour
	limiterSweepEvery = 10 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter throttles host actions per client IP so a stuck key or button cannot flood the board.
// Entries idle for longer than limiterIdleTTL are dropped by a lazy sweep on lookup.
type clientLimiter struct {
	rps   int
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	lastSweep time.Time
}

func newClientLimiter(rps, burst int) *clientLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &clientLimiter{
		rps:       rps,
		burst:     burst,
		now:       time.Now,
		limiters:  make(map[string]*limiterEntry),
		lastSweep: time.Now(),
	}
}

func (l *clientLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepEvery {
		l.sweepLocked(now)
	}
	if entry, ok := l.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(l.rps)), l.burst)
	l.limiters[key] = &limiterEntry{limiter: lim, lastSeen: now}
	return lim
}

func (l *clientLimiter) sweepLocked(now time.Time) {
	removed := 0
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, key)
			removed++
		}
	}
	l.lastSweep = now
	if removed > 0 {
		log.Printf("dropped %d idle rate limiters, %d remain", removed, len(l.limiters))
	}
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !l.get(key).Allow() {
			log.Printf("rate limit exceeded for %s", key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
