package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Sync    SyncConfig    `yaml:"sync" mapstructure:"sync"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig contiene la configuración del endpoint remoto de precios
type SourceConfig struct {
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	VsCurrency string        `yaml:"vs_currency" mapstructure:"vs_currency"`
	Assets     []string      `yaml:"assets" mapstructure:"assets"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// CacheConfig contains persisted snapshot configuration
type CacheConfig struct {
	Backend string      `yaml:"backend" mapstructure:"backend"`
	Key     string      `yaml:"key" mapstructure:"key"`
	File    FileConfig  `yaml:"file" mapstructure:"file"`
	Redis   RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// FileConfig contains file backend configuration
type FileConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr            string `yaml:"addr" mapstructure:"addr"`
	Password        string `yaml:"password" mapstructure:"password"`
	DB              int    `yaml:"db" mapstructure:"db"`
	ConnectAttempts int    `yaml:"connect_attempts" mapstructure:"connect_attempts"`
}

// SyncConfig contiene la configuración del controlador de sincronización
type SyncConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
}

// ServerConfig contains the optional HTTP presenter configuration
type ServerConfig struct {
	Enabled              bool          `yaml:"enabled" mapstructure:"enabled"`
	Port                 int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout      time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RefreshRatePerMinute int           `yaml:"refresh_rate_per_minute" mapstructure:"refresh_rate_per_minute"`
	RefreshBurst         int           `yaml:"refresh_burst" mapstructure:"refresh_burst"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:    "https://api.coingecko.com/api/v3",
			VsCurrency: "usd",
			Assets:     []string{"bitcoin", "ethereum", "dogecoin", "solana"},
			Timeout:    10 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "file",
			Key:     "@crypto_prices_cache",
			File: FileConfig{
				Dir: ".crypto-prices",
			},
			Redis: RedisConfig{
				Addr:            "localhost:6379",
				Password:        "",
				DB:              0,
				ConnectAttempts: 3,
			},
		},
		Sync: SyncConfig{
			FetchTimeout: 15 * time.Second,
		},
		Server: ServerConfig{
			Enabled:              false,
			Port:                 8080,
			ShutdownTimeout:      10 * time.Second,
			RefreshRatePerMinute: 6,
			RefreshBurst:         2,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Environment: "development",
		},
	}
}
