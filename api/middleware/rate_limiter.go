package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// clientInfo tracks one client IP's request window.
type clientInfo struct {
	requestCount int
	windowStart  time.Time
	lastRequest  time.Time
}

// RateLimiter throttles requests per client IP over a fixed window.
type RateLimiter struct {
	clients    map[string]*clientInfo
	mutex      sync.RWMutex
	maxReqs    int
	window     time.Duration
	cleanupInt time.Duration
}

// NewRateLimiter allows maxReqs requests per window per client IP.
func NewRateLimiter(maxReqs int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:    make(map[string]*clientInfo),
		maxReqs:    maxReqs,
		window:     window,
		cleanupInt: window * 2,
	}

	go rl.cleanup()

	return rl
}

// Middleware returns the gin middleware enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allowRequest(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many requests. Try again in a few minutes.",
				"code":    http.StatusTooManyRequests,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allowRequest(clientIP string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			requestCount: 1,
			windowStart:  now,
			lastRequest:  now,
		}
		return true
	}

	if now.Sub(client.windowStart) > rl.window {
		client.requestCount = 1
		client.windowStart = now
		client.lastRequest = now
		return true
	}

	client.lastRequest = now

	if client.requestCount >= rl.maxReqs {
		return false
	}

	client.requestCount++
	return true
}

// cleanup drops clients that have been idle for two windows.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInt)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		now := time.Now()

		for ip, client := range rl.clients {
			if now.Sub(client.lastRequest) > rl.cleanupInt {
				delete(rl.clients, ip)
			}
		}

		rl.mutex.Unlock()
	}
}
