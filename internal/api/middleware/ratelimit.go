package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/patternlab/lotto-engine/pkg/utils"
)

// PredictionRateLimiter caps prediction generation per user. Limiters are
// kept per user id and pruned when idle.
type PredictionRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	limit    rate.Limit
	burst    int
	stop     chan struct{}
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPredictionRateLimiter allows perHour requests per user with a small
// burst.
func NewPredictionRateLimiter(perHour int) *PredictionRateLimiter {
	burst := perHour / 10
	if burst < 1 {
		burst = 1
	}
	rl := &PredictionRateLimiter{
		limiters: make(map[string]*userLimiter),
		limit:    rate.Limit(float64(perHour) / 3600.0),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the background cleanup goroutine.
func (rl *PredictionRateLimiter) Stop() {
	close(rl.stop)
}

func (rl *PredictionRateLimiter) allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[userID] = ul
	}
	ul.lastSeen = time.Now()
	return ul.limiter.Allow()
}

func (rl *PredictionRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.prune(time.Now().Add(-time.Hour))
		case <-rl.stop:
			return
		}
	}
}

func (rl *PredictionRateLimiter) prune(cutoff time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, ul := range rl.limiters {
		if ul.lastSeen.Before(cutoff) {
			delete(rl.limiters, id)
		}
	}
}

// Middleware rejects over-limit requests with 429.
func (rl *PredictionRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(UserID(c)) {
			utils.SendRateLimited(c, "Prediction rate limit exceeded, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
