package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/health/", "/health"},
		{"/ready", "/ready"},
		{"/metrics", "/metrics"},
		{"/api/v1/prices", "/api/v1/prices"},
		{"/api/v1/prices/", "/api/v1/prices"},
		{"/api/v1/prices/refresh", "/api/v1/prices/refresh"},
		{"/api/v1/prices/stream", "/api/v1/prices/stream"},
		{"/api/v1/prices/bitcoin", "/api/v1/*"},
		{"/api/v2/prices", "/api/*"},
		{"/swagger/index.html", "/swagger/*"},
		{"/docs", "/swagger/*"},
		{"/favicon.ico", "/unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.path))
		})
	}
}

func TestHTTPMetricsMiddleware_RecordsStatus(t *testing.T) {
	handler := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/prices", "418"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/prices", "418"))
	assert.Equal(t, before+1, after)
}

func TestUpdateOfflineStatus(t *testing.T) {
	UpdateOfflineStatus(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(OfflineStatus))

	UpdateOfflineStatus(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(OfflineStatus))
}
