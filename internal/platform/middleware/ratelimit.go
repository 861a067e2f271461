// Copyright (c) 2026 Ortheo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/ortheo/internal/platform/constants"
)

// # Rate Limiting

// ClientLimiter decides whether a request from the identified client may
// proceed. Implementations are injected into [RateLimit] so the limiting
// strategy (in-process buckets, shared store, noop for tests) is swappable
// without touching the middleware chain.
type ClientLimiter interface {
	Allow(clientID string) bool
}

// tokenBucketClient pairs a limiter with its last activity timestamp.
type tokenBucketClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucketLimiter is the default in-process [ClientLimiter]. It keeps one
// token bucket per client identity and evicts idle entries in the background.
type TokenBucketLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucketClient
	rps     rate.Limit
	burst   int
}

// NewTokenBucketLimiter constructs a [TokenBucketLimiter] and starts its
// cleanup routine, which stops when ctx is cancelled.
func NewTokenBucketLimiter(ctx context.Context) *TokenBucketLimiter {
	limiter := &TokenBucketLimiter{
		clients: make(map[string]*tokenBucketClient),
		rps:     rate.Limit(constants.DefaultRateLimitRPS),
		burst:   constants.DefaultRateLimitBurst,
	}

	// Evict idle clients so the map does not grow unbounded.
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.mu.Lock()
				for clientID, clientInfo := range limiter.clients {
					if time.Since(clientInfo.lastSeen) > constants.RateLimitClientTTL {
						delete(limiter.clients, clientID)
					}
				}
				limiter.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return limiter
}

// Allow implements [ClientLimiter] using the token bucket algorithm.
func (l *TokenBucketLimiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	clientInfo, found := l.clients[clientID]
	if !found {
		clientInfo = &tokenBucketClient{
			limiter: rate.NewLimiter(l.rps, l.burst),
		}
		l.clients[clientID] = clientInfo
	}

	clientInfo.lastSeen = time.Now()

	return clientInfo.limiter.Allow()
}

// RateLimit throttles requests per client identity (IP) using the injected
// [ClientLimiter].
func RateLimit(limiter ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// Identify the client by their IP address
			clientIP := RealIP(request)

			if !limiter.Allow(clientIP) {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
