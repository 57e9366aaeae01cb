package config

import (
	"crypto-price-sync/internal/domain/entities"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateSource(config.Source); err != nil {
		return fmt.Errorf("source config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateSync(config.Sync, config.Source); err != nil {
		return fmt.Errorf("sync config validation failed: %w", err)
	}

	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// validateSource valida el endpoint remoto y el conjunto de activos
func (v *Validator) validateSource(config SourceConfig) error {
	if err := v.validateURL(config.BaseURL, "source base_url"); err != nil {
		return err
	}

	if config.VsCurrency == "" {
		return fmt.Errorf("vs_currency cannot be empty")
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got: %v", config.Timeout)
	}

	if config.Timeout > 2*time.Minute {
		return fmt.Errorf("source timeout too long: %v, max 2 minutes", config.Timeout)
	}

	return v.validateAssets(config.Assets)
}

// validateAssets exige un subconjunto no vacío y sin duplicados del conjunto fijo
func (v *Validator) validateAssets(assets []string) error {
	if len(assets) == 0 {
		return fmt.Errorf("assets cannot be empty")
	}

	seen := make(map[string]bool, len(assets))
	for _, asset := range assets {
		if !entities.AssetID(asset).IsKnown() {
			return fmt.Errorf("unsupported asset: %q, must be one of: %v", asset, entities.KnownAssets())
		}
		if seen[asset] {
			return fmt.Errorf("duplicate asset: %q", asset)
		}
		seen[asset] = true
	}

	return nil
}

// validateCache valida la configuración del cache persistente
func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"file", "redis", "memory"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	if strings.TrimSpace(config.Key) == "" {
		return fmt.Errorf("cache key cannot be empty")
	}

	switch config.Backend {
	case "file":
		if strings.TrimSpace(config.File.Dir) == "" {
			return fmt.Errorf("cache file dir cannot be empty")
		}
		if strings.ContainsAny(config.Key, `/\`) {
			return fmt.Errorf("cache key %q cannot contain path separators for the file backend", config.Key)
		}
	case "redis":
		return v.validateRedis(config.Redis)
	}

	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.ConnectAttempts < 1 || config.ConnectAttempts > 10 {
		return fmt.Errorf("redis connect_attempts must be between 1-10, got: %d", config.ConnectAttempts)
	}

	return nil
}

// validateSync valida los tiempos del controlador
func (v *Validator) validateSync(config SyncConfig, source SourceConfig) error {
	if config.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got: %v", config.FetchTimeout)
	}

	if config.FetchTimeout < source.Timeout {
		return fmt.Errorf("fetch_timeout (%v) should not be shorter than source timeout (%v)", config.FetchTimeout, source.Timeout)
	}

	return nil
}

// validateServer valida la configuración del presenter HTTP
func (v *Validator) validateServer(config ServerConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.RefreshRatePerMinute <= 0 {
		return fmt.Errorf("refresh_rate_per_minute must be positive, got: %d", config.RefreshRatePerMinute)
	}

	if config.RefreshBurst <= 0 {
		return fmt.Errorf("refresh_burst must be positive, got: %d", config.RefreshBurst)
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento (sin distinguir mayúsculas)
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
