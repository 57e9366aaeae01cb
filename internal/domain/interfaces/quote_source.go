package interfaces

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
)

// QuoteSource obtiene cotizaciones del endpoint remoto de precios.
// Cada llamada es un único round trip: sin reintentos internos.
type QuoteSource interface {
	FetchQuotes(ctx context.Context, ids []entities.AssetID) (*entities.Snapshot, error)
}
