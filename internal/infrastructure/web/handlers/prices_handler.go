package handlers

import (
	"crypto-price-sync/internal/application/dto"
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamWriteWait = 10 * time.Second
	streamPongWait  = 60 * time.Second
	streamPingEvery = (streamPongWait * 9) / 10
)

// PricesHandler expone el ViewState del controlador por HTTP
type PricesHandler struct {
	controller interfaces.SyncController
	mapper     *dto.ViewStateMapper
	upgrader   websocket.Upgrader
}

// NewPricesHandler creates a new instance of the prices handler
func NewPricesHandler(controller interfaces.SyncController) *PricesHandler {
	return &PricesHandler{
		controller: controller,
		mapper:     dto.NewViewStateMapper(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// GetPrices maneja GET /api/v1/prices
func (h *PricesHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, h.mapper.ToPricesResponse(h.controller.State()))
}

// Refresh maneja POST /api/v1/prices/refresh. Bloquea hasta que termina el
// intento; si ya había un fetch en curso responde started=false.
func (h *PricesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	started := h.controller.Refresh(ctx)
	if !started {
		logging.Debug(ctx, "Refresh intent ignored, fetch already in flight", nil)
	}

	writeJSONResponse(w, http.StatusOK, h.mapper.ToRefreshResponse(started, h.controller.State()))
}

// Stream maneja GET /api/v1/prices/stream: envía el estado actual y cada cambio
func (h *PricesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP
		logging.WarnWithError(ctx, "WebSocket upgrade failed", err, nil)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	updates, cancel := h.controller.Subscribe()
	defer cancel()

	metrics.StreamSubscriberConnected()
	defer metrics.StreamSubscriberDisconnected()

	// el lector solo procesa control frames y detecta el cierre del cliente
	clientGone := make(chan struct{})
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingEvery)
	defer ticker.Stop()

	for {
		select {
		case state, ok := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
				return
			}
			if err := conn.WriteJSON(h.mapper.ToPricesResponse(state)); err != nil {
				logging.Debug(ctx, "Stream subscriber write failed", logging.Fields{
					"error": err.Error(),
				})
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-clientGone:
			return
		}
	}
}

// writeJSONResponse escribe una respuesta JSON
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
