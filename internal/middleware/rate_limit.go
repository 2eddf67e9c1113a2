// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientLimiter keeps a token bucket per client IP. Idle entries are dropped
// by a background janitor so the map does not grow with every visitor seen.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

const clientIdleTTL = 3 * time.Minute

func newClientLimiter(limit rate.Limit, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
	}
	go cl.janitor()
	return cl
}

func (cl *clientLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cl.mu.Lock()
		for ip, c := range cl.clients {
			if time.Since(c.lastSeen) > clientIdleTTL {
				delete(cl.clients, ip)
			}
		}
		cl.mu.Unlock()
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	c, ok := cl.clients[ip]
	if !ok {
		c = &client{bucket: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.bucket.Allow()
}

func (cl *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Tiers. Browsing is generous; credential and payment endpoints are tight so
// passwords and card numbers cannot be guessed through the API.
var (
	generalLimiter = newClientLimiter(rate.Every(time.Second), 10)     // browsing and cart traffic
	authLimiter    = newClientLimiter(rate.Every(12*time.Second), 5)   // login and registration
	paymentLimiter = newClientLimiter(rate.Every(10*time.Second), 6)   // checkout and payment attempts
	uploadLimiter  = newClientLimiter(rate.Every(6*time.Second), 10)   // image uploads
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware()
}

func PaymentRateLimit() gin.HandlerFunc {
	return paymentLimiter.middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware()
}
