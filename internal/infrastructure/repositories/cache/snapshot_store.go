package cache

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultSnapshotKey es la clave única del registro persistido, la misma que
// usa el cliente móvil
const DefaultSnapshotKey = "@crypto_prices_cache"

// timestampLayout mantiene milisegundos y sufijo Z, como toISOString
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// snapshotRecord es el formato persistido:
// {"data":[{"id","name","symbol","price","change24h"}...],"timestamp":"..."}
type snapshotRecord struct {
	Data      []recordEntry `json:"data"`
	Timestamp string        `json:"timestamp"`
}

type recordEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

// SnapshotStore implementa interfaces.SnapshotStore sobre cualquier interfaces.Cache
type SnapshotStore struct {
	backend interfaces.Cache
	key     string
}

// NewSnapshotStore crea el store; key vacía usa DefaultSnapshotKey
func NewSnapshotStore(backend interfaces.Cache, key string) *SnapshotStore {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotStore{
		backend: backend,
		key:     key,
	}
}

var _ interfaces.SnapshotStore = (*SnapshotStore)(nil)

// Read devuelve el último snapshot escrito. Clave ausente, fallo del backend
// o registro corrupto se reportan como ausencia.
func (s *SnapshotStore) Read(ctx context.Context) (*entities.Snapshot, bool) {
	raw, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		metrics.RecordCacheOperation("read", "miss")
		logging.Cache().Miss(ctx, s.key, "read")
		return nil, false
	}
	if err != nil {
		metrics.RecordCacheOperation("read", "error")
		logging.Cache().CacheError(ctx, "read", s.key, fmt.Errorf("%w: %v", entities.ErrCacheRead, err))
		return nil, false
	}

	snapshot, err := decodeSnapshot(raw)
	if err != nil {
		metrics.RecordCacheOperation("read", "corrupt")
		logging.Cache().CacheError(ctx, "read", s.key, fmt.Errorf("%w: %v", entities.ErrCacheRead, err))
		return nil, false
	}

	metrics.RecordCacheOperation("read", "hit")
	logging.Cache().Hit(ctx, s.key, "read")
	return snapshot, true
}

// Write reemplaza el registro completo
func (s *SnapshotStore) Write(ctx context.Context, snapshot *entities.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: nil snapshot", entities.ErrCacheWrite)
	}

	payload, err := encodeSnapshot(snapshot)
	if err != nil {
		metrics.RecordCacheOperation("write", "error")
		return fmt.Errorf("%w: %v", entities.ErrCacheWrite, err)
	}

	if err := s.backend.Set(ctx, s.key, payload); err != nil {
		metrics.RecordCacheOperation("write", "error")
		wrapped := fmt.Errorf("%w: %v", entities.ErrCacheWrite, err)
		logging.Cache().CacheError(ctx, "write", s.key, wrapped)
		return wrapped
	}

	metrics.RecordCacheOperation("write", "success")
	metrics.UpdateCacheRecordSize(len(payload))
	logging.Cache().Stored(ctx, s.key, len(payload))
	return nil
}

func encodeSnapshot(snapshot *entities.Snapshot) (string, error) {
	record := snapshotRecord{
		Data:      make([]recordEntry, 0, snapshot.Len()),
		Timestamp: snapshot.CapturedAt.UTC().Format(timestampLayout),
	}

	for _, q := range snapshot.Quotes {
		info, _ := entities.LookupAsset(q.ID)
		record.Data = append(record.Data, recordEntry{
			ID:        string(q.ID),
			Name:      info.Name,
			Symbol:    info.Symbol,
			Price:     q.PriceUSD,
			Change24h: q.Change24hPct,
		})
	}

	bytes, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// decodeSnapshot valida el registro. Ids que ya no forman parte del conjunto
// fijo se descartan; un valor inválido invalida el registro completo.
func decodeSnapshot(raw string) (*entities.Snapshot, error) {
	var record snapshotRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	if record.Data == nil {
		return nil, fmt.Errorf("record has no data field")
	}

	capturedAt, err := time.Parse(time.RFC3339Nano, record.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("invalid record timestamp %q: %w", record.Timestamp, err)
	}

	quotes := make([]entities.Quote, 0, len(record.Data))
	for _, entry := range record.Data {
		id := entities.AssetID(entry.ID)
		if !id.IsKnown() {
			continue
		}

		quote, err := entities.NewQuote(id, entry.Price, entry.Change24h)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}

	return entities.NewSnapshot(quotes, capturedAt), nil
}
