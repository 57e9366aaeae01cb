package middleware

import (
	"crypto-price-sync/internal/application/dto"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

// RefreshLimiter limita las intenciones de refresh por cliente para que el
// presenter HTTP no pueda martillar el endpoint remoto
type RefreshLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
}

// NewRefreshLimiter crea un limitador de perMinute refrescos por minuto y cliente
func NewRefreshLimiter(perMinute, burst int) *RefreshLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &RefreshLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
	}
}

// getLimiter returns the limiter for a client, creating it on first use
func (rl *RefreshLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= maxTrackedClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler returns the rate limiting middleware handler
func (rl *RefreshLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := ClientIP(r)
		limiter := rl.getLimiter(clientIP)

		reservation := limiter.Reserve()
		delay := reservation.Delay()
		if delay > 0 {
			// no se consume el token si la petición se rechaza
			reservation.Cancel()
			metrics.RecordRateLimitResult(false)
			logging.HTTP().RateLimitExceeded(r.Context(), clientIP, r.URL.Path)
			writeRateLimitError(w, delay)
			return
		}

		metrics.RecordRateLimitResult(true)
		next.ServeHTTP(w, r)
	})
}

func writeRateLimitError(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   "RATE_LIMIT_EXCEEDED",
		Message: "Too many refresh requests. Please slow down.",
		Code:    strconv.Itoa(http.StatusTooManyRequests),
	})
}
