package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeSpec(t *testing.T) {
	tests := []struct {
		name         string
		forwarded    string
		host         string
		expectedHost string
	}{
		{"host del request", "", "prices.local:9090", "prices.local:9090"},
		{"X-Forwarded-Host tiene prioridad", "public.example.com", "10.0.0.1:8080", "public.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, SpecPath, nil)
			req.Host = tt.host
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-Host", tt.forwarded)
			}
			rec := httptest.NewRecorder()

			NewHandler("1.2.3").ServeSpec(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var doc struct {
				Host string `json:"host"`
				Info struct {
					Version string `json:"version"`
				} `json:"info"`
				Paths map[string]json.RawMessage `json:"paths"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			assert.Equal(t, tt.expectedHost, doc.Host)
			assert.Equal(t, "1.2.3", doc.Info.Version)
			assert.Contains(t, doc.Paths, "/api/v1/prices")
			assert.Contains(t, doc.Paths, "/api/v1/prices/refresh")
			assert.Contains(t, doc.Paths, "/api/v1/prices/stream")
		})
	}
}
