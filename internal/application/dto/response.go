package dto

import (
	"time"
)

const (
	OfflineBanner = "Offline mode - showing cached data"

	DirectionUp   = "up"
	DirectionDown = "down"
)

// QuoteData representa una cotización lista para mostrar
type QuoteData struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Icon      string  `json:"icon"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	Direction string  `json:"direction"` // up cuando change24h >= 0
}

// PricesResponse is the presenter-facing view of the controller state
type PricesResponse struct {
	Phase         string      `json:"phase"`
	Quotes        []QuoteData `json:"quotes"`
	LastUpdatedAt *time.Time  `json:"last_updated_at,omitempty"`
	IsLoading     bool        `json:"is_loading"`
	IsRefreshing  bool        `json:"is_refreshing"`
	IsOffline     bool        `json:"is_offline"`
	Banner        string      `json:"banner,omitempty"`
	ErrorMessage  string      `json:"error_message,omitempty"`
}

// RefreshResponse is returned by the refresh intent endpoint
type RefreshResponse struct {
	Started bool           `json:"started"`
	State   PricesResponse `json:"state"`
}

// ErrorResponse represents a standard error response for endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse represents the health check response with service status
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}
