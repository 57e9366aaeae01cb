package handlers

import (
	"crypto-price-sync/internal/application/dto"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/domain/interfaces"
	"net/http"
	"time"
)

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	controller interfaces.SyncController
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(controller interfaces.SyncController) *HealthHandler {
	return &HealthHandler{
		controller: controller,
	}
}

// Health responde rápido sin mirar dependencias
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  map[string]string{"service": "running"},
	})
}

// Ready responde 200 cuando el controlador terminó el arranque.
// Offline sigue siendo ready: el cliente sirve datos en cache o el error.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	state := h.controller.State()
	phase := state.Phase()

	services := map[string]string{
		"sync":   string(phase),
		"remote": "online",
	}
	if state.IsOffline {
		services["remote"] = "offline"
	}

	if phase == entities.PhaseCold || phase == entities.PhaseLoading {
		writeJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:    "starting",
			Timestamp: time.Now().UTC(),
			Services:  services,
		})
		return
	}

	status := "ready"
	if state.IsOffline {
		status = "degraded"
	}

	writeJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	})
}
