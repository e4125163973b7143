package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var requestTimeout = 10 * time.Second

// SetRequestTimeout overrides the deadline every handler gets from WithTimeout.
func SetRequestTimeout(d time.Duration) {
	if d > 0 {
		requestTimeout = d
	}
}

func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, requestTimeout)
}

type key int

const RequestIDKey key = 0

func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

const (
	requestsPerSecond = 200 // Лимит запросов в секунду для каждого IP
	burstLimit        = 500 // Максимальный «всплеск» запросов
)

const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

var clientLimiters = sync.Map{}

func getLimiter(ip string) *rate.Limiter {
	v, _ := clientLimiters.LoadOrStore(ip, &clientLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstLimit),
	})
	cl := v.(*clientLimiter)
	cl.lastSeen.Store(time.Now().UnixNano())
	return cl.limiter
}

// sweepLimiters drops limiters of clients not seen since before cutoff.
func sweepLimiters(cutoff time.Time) int {
	removed := 0
	clientLimiters.Range(func(key, value interface{}) bool {
		if value.(*clientLimiter).lastSeen.Load() < cutoff.UnixNano() {
			clientLimiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartLimiterCleanup periodically forgets clients idle for longer than
// limiterIdleTTL until ctx is done.
func StartLimiterCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				sweepLimiters(now.Add(-limiterIdleTTL))
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := getLimiter(clientIP(r))

		if !limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func EnableCORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
