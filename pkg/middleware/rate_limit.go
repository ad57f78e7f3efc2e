package middleware

import (
	"net/http"
	"salalivre/pkg/logger"
	"sync"
	"time"
)

type PrincipalExtractor func(r *http.Request) string

// PrincipalRateLimiter is a sliding-window limiter keyed by the requesting
// user id. Requests without a principal pass through; the handler rejects
// those on its own terms.
type PrincipalRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor PrincipalExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewPrincipalRateLimiter(limit int, window time.Duration, extractor PrincipalExtractor, log *logger.Logger) *PrincipalRateLimiter {
	limiter := &PrincipalRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *PrincipalRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for principal, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, principal)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *PrincipalRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *PrincipalRateLimiter) Allow(principal string) bool {
	if principal == "" {
		return true
	}

	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := make([]time.Time, 0, len(rl.requests[principal]))
	for _, ts := range rl.requests[principal] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[principal] = valid
		return false
	}

	rl.requests[principal] = append(valid, now)
	return true
}

func PrincipalRateLimit(limiter *PrincipalRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := extractPrincipal(r, limiter.extractor)

			if principal == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(principal) {
				rejectRateLimited(w, limiter.log, r, principal)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractPrincipal(r *http.Request, extractor PrincipalExtractor) string {
	if extractor == nil {
		return r.Header.Get("X-User-ID")
	}
	return extractor(r)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, principal string) {
	requestID := ""
	if rid := r.Context().Value(RequestIDKey); rid != nil {
		if id, ok := rid.(string); ok {
			requestID = id
		}
	}

	log.Warn("Rate limit exceeded",
		"request_id", requestID,
		"principal", principal,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
}

func DefaultPrincipalExtractor(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
