package server

import (
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/config"
	"crypto-price-sync/internal/infrastructure/metrics"
	"crypto-price-sync/internal/infrastructure/web/docs"
	"crypto-price-sync/internal/infrastructure/web/handlers"
	"crypto-price-sync/internal/infrastructure/web/middleware"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter arma las rutas del presenter HTTP sobre el controlador
func NewRouter(controller interfaces.SyncController, cfg config.ServerConfig, version string) http.Handler {
	pricesHandler := handlers.NewPricesHandler(controller)
	healthHandler := handlers.NewHealthHandler(controller)
	docsHandler := docs.NewHandler(version)
	refreshLimiter := middleware.NewRefreshLimiter(cfg.RefreshRatePerMinute, cfg.RefreshBurst)

	router := mux.NewRouter()
	router.Use(middleware.RequestTracingMiddleware)
	router.Use(metrics.HTTPMetricsMiddleware)

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/ready", healthHandler.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// doc.json va antes del prefijo para que la UI lea nuestro documento
	router.HandleFunc(docs.SpecPath, docsHandler.ServeSpec).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(docs.UI()).Methods(http.MethodGet)
	router.Handle("/docs", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))

	// rutas completas en el router raíz: un subrouter de mux responde 404 en
	// vez de 405 cuando solo falla el método
	router.HandleFunc("/api/v1/prices", pricesHandler.GetPrices).Methods(http.MethodGet)
	router.Handle("/api/v1/prices/refresh", refreshLimiter.Handler(http.HandlerFunc(pricesHandler.Refresh))).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/prices/stream", pricesHandler.Stream).Methods(http.MethodGet)

	return router
}
