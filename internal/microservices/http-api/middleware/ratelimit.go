package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SubmissionLimiter throttles comment writes per user so a single account
// cannot flood a chapter thread. Anonymous requests never reach it because
// write routes sit behind AuthMiddleware.
type SubmissionLimiter struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	perMin   int
	burst    int
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewSubmissionLimiter(perMinute, burst int) *SubmissionLimiter {
	sl := &SubmissionLimiter{
		limiters: make(map[string]*userLimiter),
		perMin:   perMinute,
		burst:    burst,
	}
	go sl.cleanupLoop()
	return sl
}

func (sl *SubmissionLimiter) get(userID string) *rate.Limiter {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	ul, ok := sl.limiters[userID]
	if !ok {
		ul = &userLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(sl.perMin)/60.0), sl.burst),
		}
		sl.limiters[userID] = ul
	}
	ul.lastSeen = time.Now()
	return ul.limiter
}

// cleanupLoop drops limiters for users idle longer than ten minutes.
func (sl *SubmissionLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sl.mu.Lock()
		for userID, ul := range sl.limiters {
			if time.Since(ul.lastSeen) > 10*time.Minute {
				delete(sl.limiters, userID)
			}
		}
		sl.mu.Unlock()
	}
}

// Middleware rejects requests over the per-user submission rate with 429.
func (sl *SubmissionLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if !sl.get(userID).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many submissions, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
