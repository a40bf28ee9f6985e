package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"webcraft/utils"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 4096
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds one limiter per client IP.
type rateLimiterStore struct {
	perMinute int
	visitors  map[string]*visitor
	mu        sync.Mutex
}

func newRateLimiterStore(perMinute int) *rateLimiterStore {
	return &rateLimiterStore{
		perMinute: perMinute,
		visitors:  make(map[string]*visitor),
	}
}

// getLimiter returns the limiter for ip, creating it on first sight. Idle
// entries are swept once the map grows past limiterSweepSize.
func (s *rateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		if len(s.visitors) >= limiterSweepSize {
			for k, old := range s.visitors {
				if now.Sub(old.lastSeen) > limiterIdleTTL {
					delete(s.visitors, k)
				}
			}
		}
		// perMinute requests per minute, all of which may arrive at once.
		v = &visitor{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimitMiddleware limits requests per client IP. A non-positive limit
// disables it.
func RateLimitMiddleware(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := newRateLimiterStore(perMinute)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip, time.Now()).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Message: "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
