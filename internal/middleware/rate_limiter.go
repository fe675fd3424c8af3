package middleware

import (
	"net/http"
	"sync"
	"time"

	"tienda/internal/apierror"

	"github.com/gin-gonic/gin"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginRateMap   = make(map[string]*rateEntry)
	loginRateMapMu sync.Mutex

	apiRateMap   = make(map[string]*rateEntry)
	apiRateMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limiter(loginRateMap, &loginRateMapMu, 20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return limiter(apiRateMap, &apiRateMapMu, limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func limiter(entries map[string]*rateEntry, entriesMu *sync.Mutex, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		entriesMu.Lock()
		entry, exists := entries[ip]
		if !exists {
			entry = &rateEntry{}
			entries[ip] = entry
		}
		entriesMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			// Reset sliding window
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// ── Purge goroutine ───────────────────────────────────────────────────────────
// Periodically removes expired entries from both rate limiter maps to prevent
// memory growth from IPs that never return.

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		for range time.Tick(purgeInterval) {
			purge(loginRateMap, &loginRateMapMu)
			purge(apiRateMap, &apiRateMapMu)
		}
	}()
}

func purge(entries map[string]*rateEntry, entriesMu *sync.Mutex) {
	now := time.Now()
	entriesMu.Lock()
	defer entriesMu.Unlock()
	for ip, entry := range entries {
		entry.mu.Lock()
		expired := now.After(entry.windowEnd)
		entry.mu.Unlock()
		if expired {
			delete(entries, ip)
		}
	}
}
