package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
source:
  base_url: "https://pro-api.coingecko.com/api/v3"
  assets: ["bitcoin", "solana"]
  timeout: 4s
cache:
  backend: redis
  redis:
    addr: "redis:6379"
    db: 2
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pro-api.coingecko.com/api/v3", cfg.Source.BaseURL)
	assert.Equal(t, []string{"bitcoin", "solana"}, cfg.Source.Assets)
	assert.Equal(t, 4*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// valores no presentes en el archivo conservan el default
	assert.Equal(t, "usd", cfg.Source.VsCurrency)
	assert.Equal(t, "@crypto_prices_cache", cfg.Cache.Key)
	assert.Equal(t, 3, cfg.Cache.Redis.ConnectAttempts)
}

func TestLoader_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: file\n"), 0o600))

	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CRYPTO_PRICES_SYNC_FETCH_TIMEOUT", "30s")
	t.Setenv("PRICE_ASSETS", " Bitcoin, ethereum ,,")

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Sync.FetchTimeout)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, cfg.Source.Assets)
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	_, err := NewLoader().LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
