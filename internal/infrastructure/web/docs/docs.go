// Package docs sirve la documentación OpenAPI del presenter HTTP y la UI de Swagger.
// El documento se mantiene a mano en openapi.json.tmpl y se registra en swag
// igual que lo haría un paquete generado por swag init.
package docs

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/swaggo/swag"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	SpecPath    = "/swagger/doc.json"
	defaultHost = "localhost:8080"
)

//go:embed openapi.json.tmpl
var swaggerTemplate string

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "dev",
	Host:             defaultHost,
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Crypto Price Sync API",
	Description:      "HTTP presenter over the price sync controller: current view state, refresh intent and a websocket stream of state changes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Handler sirve el documento OpenAPI con el host real del request
type Handler struct{}

// NewHandler crea el handler y fija la versión publicada en el documento
func NewHandler(version string) *Handler {
	if version != "" {
		SwaggerInfo.Version = version
	}
	return &Handler{}
}

// ServeSpec maneja GET /swagger/doc.json
func (h *Handler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	spec, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		http.Error(w, "swagger document not registered", http.StatusInternalServerError)
		return
	}

	if host := r.Header.Get("X-Forwarded-Host"); host != "" {
		spec = strings.ReplaceAll(spec, defaultHost, host)
	} else if r.Host != "" {
		spec = strings.ReplaceAll(spec, defaultHost, r.Host)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(spec))
}

// UI retorna el handler de Swagger UI apuntando a SpecPath
func UI() http.Handler {
	return httpSwagger.Handler(httpSwagger.URL(SpecPath))
}
