package middleware

import (
	"sync"
	"time"

	"github.com/anjiri1684/appointment_booking/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// sweepInterval is how often idle limiters are dropped from the store.
const sweepInterval = time.Minute

// rateLimiterStore holds one token bucket per key.
type rateLimiterStore struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func newRateLimiterStore(limit rate.Limit, burst int) *rateLimiterStore {
	return &rateLimiterStore{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
	}
}

func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[key] = limiter
	}
	return limiter
}

// sweep drops limiters whose bucket has refilled; a fresh one behaves the
// same. Caller holds mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	for key, l := range s.limiters {
		if l.TokensAt(now) >= float64(s.burst) {
			delete(s.limiters, key)
		}
	}
	s.lastSweep = now
}

func (s *rateLimiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimit allows perMinute requests per authenticated user, or per client
// IP for anonymous requests.
func RateLimit(perMinute int, message func(c *fiber.Ctx) string) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 20
	}
	store := newRateLimiterStore(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(c *fiber.Ctx) error {
		key := c.IP()
		if id, _, ok := CurrentUser(c); ok {
			key = id.String()
		}
		if !store.getLimiter(key).Allow() {
			metrics.RateLimited.Inc()
			zap.L().Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": message(c)})
		}
		return c.Next()
	}
}
