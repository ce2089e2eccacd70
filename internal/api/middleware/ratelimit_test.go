package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPredictionRateLimiterBurst(t *testing.T) {
	rl := NewPredictionRateLimiter(10)
	defer rl.Stop()

	// perHour 10 gives a burst of 1: the first request passes, the
	// immediate second one is rejected.
	assert.True(t, rl.allow("user-1"))
	assert.False(t, rl.allow("user-1"))

	// Another user has their own bucket.
	assert.True(t, rl.allow("user-2"))
}

func TestPredictionRateLimiterPrune(t *testing.T) {
	rl := NewPredictionRateLimiter(10)
	defer rl.Stop()

	rl.allow("user-1")
	rl.allow("user-2")
	assert.Len(t, rl.limiters, 2)

	// A cutoff in the future treats both entries as idle.
	rl.prune(time.Now().Add(time.Minute))
	assert.Empty(t, rl.limiters)

	// Pruned users get a fresh bucket.
	assert.True(t, rl.allow("user-1"))
}

func TestPredictionRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewPredictionRateLimiter(10)
	defer rl.Stop()

	router := gin.New()
	router.POST("/predictions", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/predictions", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/predictions", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}
