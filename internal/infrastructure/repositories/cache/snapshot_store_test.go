package cache

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/infrastructure/config"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCache simula un backend caído
type failingCache struct {
	getErr error
	setErr error
}

func (f *failingCache) Get(ctx context.Context, key string) (string, error) { return "", f.getErr }

func (f *failingCache) Set(ctx context.Context, key, value string) error { return f.setErr }

func (f *failingCache) Delete(ctx context.Context, key string) error { return nil }

func (f *failingCache) Close() error { return nil }

func mustQuote(t *testing.T, id entities.AssetID, price, change float64) entities.Quote {
	t.Helper()
	q, err := entities.NewQuote(id, price, change)
	require.NoError(t, err)
	return q
}

func sampleSnapshot(t *testing.T) *entities.Snapshot {
	return entities.NewSnapshot([]entities.Quote{
		mustQuote(t, entities.Solana, 150.5, 2.25),
		mustQuote(t, entities.Bitcoin, 64000.12, -1.5),
		mustQuote(t, entities.Dogecoin, 0.1234, 0),
	}, time.Date(2026, 5, 4, 10, 30, 0, 123000000, time.UTC))
}

// ===== CASOS DE ÉXITO =====

func TestSnapshotStore_WriteThenRead(t *testing.T) {
	backends := map[string]func(t *testing.T) *SnapshotStore{
		"memory": func(t *testing.T) *SnapshotStore {
			return NewSnapshotStore(NewMemoryCache(), "")
		},
		"file": func(t *testing.T) *SnapshotStore {
			fc, err := NewFileCache(afero.NewMemMapFs(), "/cache")
			require.NoError(t, err)
			return NewSnapshotStore(fc, "")
		},
	}

	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := build(t)
			written := sampleSnapshot(t)

			require.NoError(t, store.Write(ctx, written))

			read, ok := store.Read(ctx)
			require.True(t, ok)
			assert.True(t, written.Equal(read), "quotes content must survive the round trip")
			assert.True(t, written.CapturedAt.Equal(read.CapturedAt))
		})
	}
}

func TestSnapshotStore_RecordLayout(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryCache()
	store := NewSnapshotStore(backend, "")

	require.NoError(t, store.Write(ctx, sampleSnapshot(t)))

	raw, err := backend.Get(ctx, DefaultSnapshotKey)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, "2026-05-04T10:30:00.123Z", record["timestamp"])

	data, ok := record["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 3)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "bitcoin", first["id"])
	assert.Equal(t, "Bitcoin", first["name"])
	assert.Equal(t, "BTC", first["symbol"])
	assert.Equal(t, 64000.12, first["price"])
	assert.Equal(t, -1.5, first["change24h"])
}

func TestSnapshotStore_WriteReplacesPreviousRecord(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(NewMemoryCache(), "custom_key")

	require.NoError(t, store.Write(ctx, sampleSnapshot(t)))

	second := entities.NewSnapshot([]entities.Quote{
		mustQuote(t, entities.Ethereum, 3100, 1),
	}, time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC))
	require.NoError(t, store.Write(ctx, second))

	read, ok := store.Read(ctx)
	require.True(t, ok)
	assert.True(t, second.Equal(read))
	assert.Equal(t, 1, read.Len())
}

func TestSnapshotStore_EmptySnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(NewMemoryCache(), "")

	empty := entities.NewSnapshot(nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Write(ctx, empty))

	read, ok := store.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, 0, read.Len())
}

func TestSnapshotStore_ReadsRecordWrittenByPreviousClient(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryCache()
	require.NoError(t, backend.Set(ctx, DefaultSnapshotKey,
		`{"data":[{"id":"ethereum","name":"Ethereum","symbol":"ETH","price":3000.5,"change24h":-2}],"timestamp":"2025-12-31T23:59:59.999Z"}`))

	read, ok := NewSnapshotStore(backend, "").Read(ctx)

	require.True(t, ok)
	q, found := read.Quote(entities.Ethereum)
	require.True(t, found)
	assert.Equal(t, 3000.5, q.PriceUSD)
	assert.Equal(t, 2025, read.CapturedAt.Year())
}

// ===== AUSENCIA Y CORRUPCIÓN =====

func TestSnapshotStore_ReadAbsent(t *testing.T) {
	tests := []struct {
		name    string
		backend func() *SnapshotStore
	}{
		{
			name: "missing key",
			backend: func() *SnapshotStore {
				return NewSnapshotStore(NewMemoryCache(), "")
			},
		},
		{
			name: "backend failure",
			backend: func() *SnapshotStore {
				return NewSnapshotStore(&failingCache{getErr: errors.New("disk on fire")}, "")
			},
		},
	}

	corrupt := []struct {
		name   string
		stored string
	}{
		{"not json", `not json at all`},
		{"truncated", `{"data":[{"id":"bitcoin"`},
		{"missing data", `{"timestamp":"2026-01-01T00:00:00.000Z"}`},
		{"missing timestamp", `{"data":[]}`},
		{"bad timestamp", `{"data":[],"timestamp":"yesterday"}`},
		{"negative price", `{"data":[{"id":"bitcoin","price":-1,"change24h":0}],"timestamp":"2026-01-01T00:00:00.000Z"}`},
		{"zero price", `{"data":[{"id":"bitcoin","price":0,"change24h":0}],"timestamp":"2026-01-01T00:00:00.000Z"}`},
		{"data is object", `{"data":{"bitcoin":1},"timestamp":"2026-01-01T00:00:00.000Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, ok := tt.backend().Read(context.Background())
			assert.False(t, ok)
			assert.Nil(t, snapshot)
		})
	}

	for _, tt := range corrupt {
		t.Run("corrupt/"+tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := NewMemoryCache()
			require.NoError(t, backend.Set(ctx, DefaultSnapshotKey, tt.stored))

			snapshot, ok := NewSnapshotStore(backend, "").Read(ctx)
			assert.False(t, ok)
			assert.Nil(t, snapshot)
		})
	}
}

func TestSnapshotStore_ReadDropsRetiredAssets(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryCache()
	require.NoError(t, backend.Set(ctx, DefaultSnapshotKey,
		`{"data":[{"id":"cardano","price":1,"change24h":0},{"id":"bitcoin","price":2,"change24h":0}],"timestamp":"2026-01-01T00:00:00.000Z"}`))

	read, ok := NewSnapshotStore(backend, "").Read(ctx)

	require.True(t, ok)
	require.Equal(t, 1, read.Len())
	assert.Equal(t, entities.Bitcoin, read.Quotes[0].ID)
}

// ===== ESCRITURA FALLIDA =====

func TestSnapshotStore_WriteFailure(t *testing.T) {
	store := NewSnapshotStore(&failingCache{setErr: errors.New("quota exceeded")}, "")

	err := store.Write(context.Background(), sampleSnapshot(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrCacheWrite)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSnapshotStore_WriteNil(t *testing.T) {
	err := NewSnapshotStore(NewMemoryCache(), "").Write(context.Background(), nil)
	assert.ErrorIs(t, err, entities.ErrCacheWrite)
}

func TestSnapshotStore_DefaultKeyOnFileBackend(t *testing.T) {
	assert.Equal(t, "@crypto_prices_cache", DefaultSnapshotKey)
	assert.Equal(t, DefaultSnapshotKey, config.GetDefaultConfig().Cache.Key)

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	backend, err := NewFileCache(fsys, "/data")
	require.NoError(t, err)

	store := NewSnapshotStore(backend, config.GetDefaultConfig().Cache.Key)
	require.NoError(t, store.Write(ctx, sampleSnapshot(t)))

	exists, err := afero.Exists(fsys, "/data/@crypto_prices_cache.json")
	require.NoError(t, err)
	assert.True(t, exists)

	read, ok := store.Read(ctx)
	require.True(t, ok)
	assert.True(t, read.Equal(sampleSnapshot(t)))
}
