package middleware

import (
	"bufio"
	"crypto-price-sync/internal/infrastructure/logging"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// responseWriter captura status y tamaño de la respuesta
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Hijack is needed by the websocket stream endpoint
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// RequestTracingMiddleware adds request tracing and structured logging
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w}

		logging.Debug(ctx, "HTTP request started", logging.Fields{
			logging.FieldHTTPMethod: r.Method,
			logging.FieldHTTPPath:   r.URL.Path,
			"user_agent":            r.Header.Get("User-Agent"),
			logging.FieldClientIP:   ClientIP(r),
		})

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		if wrapped.statusCode == 0 {
			wrapped.statusCode = http.StatusOK
		}
		durationMs := float64(time.Since(startTime).Nanoseconds()) / 1e6
		logging.HTTP().RequestCompleted(ctx, r.Method, r.URL.Path, wrapped.statusCode, durationMs)
	})
}

// ClientIP extracts the real client IP from request
func ClientIP(r *http.Request) string {
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		// puede traer varias IPs, la primera es el cliente
		return strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
