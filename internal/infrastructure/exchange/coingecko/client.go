package coingecko

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/infrastructure/config"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	CoinGeckoAPIBaseURL = "https://api.coingecko.com/api/v3"
	DefaultVsCurrency   = "usd"
	DefaultTimeout      = 10 * time.Second

	serviceName       = "coingecko"
	simplePriceSuffix = "/simple/price"
)

// Client implementa interfaces.QuoteSource sobre la API pública de CoinGecko.
// Cada FetchQuotes es un único round trip, sin reintentos.
type Client struct {
	baseURL    string
	vsCurrency string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient crea un cliente con la configuración por defecto
func NewClient() *Client {
	return &Client{
		baseURL:    CoinGeckoAPIBaseURL,
		vsCurrency: DefaultVsCurrency,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		now: time.Now,
	}
}

// NewClientWithConfig crea un cliente a partir de la sección source de la configuración
func NewClientWithConfig(cfg config.SourceConfig) *Client {
	client := NewClient()
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if cfg.VsCurrency != "" {
		client.vsCurrency = strings.ToLower(cfg.VsCurrency)
	}
	if cfg.Timeout > 0 {
		client.httpClient.Timeout = cfg.Timeout
	}
	return client
}

// WithClock reemplaza el reloj usado para CapturedAt
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// FetchQuotes obtiene las cotizaciones de los ids pedidos en una sola petición
func (c *Client) FetchQuotes(ctx context.Context, ids []entities.AssetID) (*entities.Snapshot, error) {
	if len(ids) == 0 {
		return nil, ErrNoAssetsRequested
	}

	requestURL := c.buildURL(ids)
	logging.ExternalAPI().RequestStarted(ctx, serviceName, simplePriceSuffix, http.MethodGet)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", entities.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(requestStart).Seconds()

	if err != nil {
		metrics.RecordExternalAPICall(serviceName, simplePriceSuffix, 0, duration)
		logging.ExternalAPI().RequestFailed(ctx, serviceName, simplePriceSuffix, 0, err, duration)

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: request timeout/canceled: %v", entities.ErrNetwork, err)
		}
		return nil, fmt.Errorf("%w: %v", entities.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(serviceName, simplePriceSuffix, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("%w: HTTP error! status: %d", entities.ErrNetwork, resp.StatusCode)
		logging.ExternalAPI().RequestFailed(ctx, serviceName, simplePriceSuffix, resp.StatusCode, statusErr, duration)
		return nil, statusErr
	}

	var payload SimplePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		decodeErr := fmt.Errorf("%w: failed to decode response: %v", entities.ErrMalformedResponse, err)
		logging.ExternalAPI().RequestFailed(ctx, serviceName, simplePriceSuffix, resp.StatusCode, decodeErr, duration)
		return nil, decodeErr
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty payload", entities.ErrMalformedResponse)
	}

	quotes := payload.ToQuotes(ids, c.vsCurrency)
	logging.ExternalAPI().RequestCompleted(ctx, serviceName, simplePriceSuffix, resp.StatusCode, duration)

	if len(quotes) < len(ids) {
		logging.Debug(ctx, "Some requested assets had incomplete data", logging.Fields{
			"requested": len(ids),
			"accepted":  len(quotes),
		})
	}

	return entities.NewSnapshot(quotes, c.now()), nil
}

// buildURL arma /simple/price?ids=...&vs_currencies=...&include_24hr_change=true
func (c *Client) buildURL(ids []entities.AssetID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(names, ","))
	query.Set("vs_currencies", c.vsCurrency)
	query.Set("include_24hr_change", "true")

	return c.baseURL + simplePriceSuffix + "?" + query.Encode()
}
