package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides: CRYPTO_PRICES_CACHE_BACKEND
const EnvPrefix = "CRYPTO_PRICES"

// Loader handles configuration loading using Viper
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		// Sin config.yaml se usan solo defaults y env vars
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	l.overrideWithEnvVars(config)

	return config, nil
}

// LoadFile loads configuration from an explicit file path (used by the -config flag)
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.setupViper()
	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	l.overrideWithEnvVars(config)

	return config, nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() {
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("../configs")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("/etc/crypto-prices")

	l.v.AutomaticEnv()
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.bindEnvVars()
}

// bindEnvVars maps short environment variable names to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"source.base_url":      "PRICE_API_URL",
		"source.vs_currency":   "PRICE_CURRENCY",
		"source.timeout":       "PRICE_API_TIMEOUT",
		"cache.backend":        "CACHE_BACKEND",
		"cache.key":            "CACHE_KEY",
		"cache.file.dir":       "CACHE_DIR",
		"cache.redis.addr":     "REDIS_ADDR",
		"cache.redis.password": "REDIS_PASSWORD",
		"cache.redis.db":       "REDIS_DB",
		"sync.fetch_timeout":   "FETCH_TIMEOUT",
		"server.enabled":       "SERVER_ENABLED",
		"server.port":          "PORT",
		"logging.level":        "LOG_LEVEL",
		"logging.format":       "LOG_FORMAT",
		"logging.environment":  "ENVIRONMENT",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(configKey, ".", "_")), envVar)
	}
}

// overrideWithEnvVars maneja la lista de activos como string separado por comas
func (l *Loader) overrideWithEnvVars(config *Config) {
	raw := os.Getenv(EnvPrefix + "_SOURCE_ASSETS")
	if raw == "" {
		raw = os.Getenv("PRICE_ASSETS")
	}
	if raw == "" {
		return
	}

	var assets []string
	for _, asset := range strings.Split(raw, ",") {
		asset = strings.TrimSpace(strings.ToLower(asset))
		if asset != "" {
			assets = append(assets, asset)
		}
	}

	if len(assets) > 0 {
		config.Source.Assets = assets
	}
}
