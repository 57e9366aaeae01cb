package handlers

import (
	"context"
	"crypto-price-sync/internal/application/dto"
	"crypto-price-sync/internal/domain/entities"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSyncController es un mock de interfaces.SyncController
type MockSyncController struct {
	mock.Mock
	updates chan entities.ViewState
}

func (m *MockSyncController) Initialize(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSyncController) Refresh(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockSyncController) State() entities.ViewState {
	args := m.Called()
	return args.Get(0).(entities.ViewState)
}

func (m *MockSyncController) Subscribe() (<-chan entities.ViewState, func()) {
	m.Called()
	return m.updates, func() {}
}

func readyState(t *testing.T, offline bool) entities.ViewState {
	q, err := entities.NewQuote(entities.Bitcoin, 64000.5, 1.5)
	require.NoError(t, err)
	updated := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return entities.ViewState{
		Snapshot:      entities.NewSnapshot([]entities.Quote{q}, updated),
		LastUpdatedAt: &updated,
		IsOffline:     offline,
	}
}

// ===== PRICES =====

func TestPricesHandler_GetPrices(t *testing.T) {
	controller := new(MockSyncController)
	controller.On("State").Return(readyState(t, true))

	rec := httptest.NewRecorder()
	NewPricesHandler(controller).GetPrices(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp dto.PricesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready_stale_offline", resp.Phase)
	assert.Equal(t, dto.OfflineBanner, resp.Banner)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "BTC", resp.Quotes[0].Symbol)
	assert.Equal(t, 64000.5, resp.Quotes[0].Price)
}

func TestPricesHandler_Refresh(t *testing.T) {
	tests := []struct {
		name    string
		started bool
	}{
		{"refresh performed", true},
		{"refresh ignored while in flight", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := new(MockSyncController)
			controller.On("Refresh", mock.Anything).Return(tt.started)
			controller.On("State").Return(readyState(t, false))

			rec := httptest.NewRecorder()
			NewPricesHandler(controller).Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices/refresh", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp dto.RefreshResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.started, resp.Started)
			assert.Equal(t, "ready_fresh", resp.State.Phase)
			controller.AssertExpectations(t)
		})
	}
}

func TestPricesHandler_Stream(t *testing.T) {
	controller := &MockSyncController{updates: make(chan entities.ViewState, 2)}
	controller.On("Subscribe").Return()

	server := httptest.NewServer(http.HandlerFunc(NewPricesHandler(controller).Stream))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer func() {
		_ = conn.Close()
	}()

	controller.updates <- entities.ViewState{IsLoading: true}
	controller.updates <- readyState(t, false)

	var first, second dto.PricesResponse
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "loading", first.Phase)
	assert.Equal(t, "ready_fresh", second.Phase)

	// cerrar el canal del controlador termina el stream con un close frame
	close(controller.updates)
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestPricesHandler_StreamRejectsPlainHTTP(t *testing.T) {
	controller := new(MockSyncController)

	rec := httptest.NewRecorder()
	NewPricesHandler(controller).Stream(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices/stream", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	controller.AssertNotCalled(t, "Subscribe")
}

// ===== HEALTH =====

func TestHealthHandler_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(new(MockSyncController)).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		state          entities.ViewState
		expectedCode   int
		expectedStatus string
	}{
		{"cold", entities.ViewState{}, http.StatusServiceUnavailable, "starting"},
		{"loading", entities.ViewState{IsLoading: true}, http.StatusServiceUnavailable, "starting"},
		{"fresh", readyState(t, false), http.StatusOK, "ready"},
		{"offline with cache", readyState(t, true), http.StatusOK, "degraded"},
		{"failed cold start", entities.ViewState{IsOffline: true, ErrorMessage: "boom"}, http.StatusOK, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := new(MockSyncController)
			controller.On("State").Return(tt.state)

			rec := httptest.NewRecorder()
			NewHealthHandler(controller).Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.Equal(t, string(tt.state.Phase()), resp.Services["sync"])
		})
	}
}
