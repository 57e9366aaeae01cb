package entities

import (
	"fmt"
	"math"
)

// Quote es el precio actual y la variación de 24h de un activo
type Quote struct {
	ID           AssetID `json:"id"`
	PriceUSD     float64 `json:"price"`
	Change24hPct float64 `json:"change24h"`
}

// NewQuote builds a quote, rejecting unknown ids and non-finite or non-positive prices.
func NewQuote(id AssetID, priceUSD, change24hPct float64) (Quote, error) {
	if !id.IsKnown() {
		return Quote{}, fmt.Errorf("%w: unknown asset %q", ErrInvalidQuote, id)
	}
	if math.IsNaN(priceUSD) || math.IsInf(priceUSD, 0) || priceUSD <= 0 {
		return Quote{}, fmt.Errorf("%w: price for %s must be positive and finite, got %v", ErrInvalidQuote, id, priceUSD)
	}
	if math.IsNaN(change24hPct) || math.IsInf(change24hPct, 0) {
		return Quote{}, fmt.Errorf("%w: 24h change for %s must be finite, got %v", ErrInvalidQuote, id, change24hPct)
	}

	return Quote{
		ID:           id,
		PriceUSD:     priceUSD,
		Change24hPct: change24hPct,
	}, nil
}

// IsPositive reports whether the 24h change is zero or up.
func (q Quote) IsPositive() bool {
	return q.Change24hPct >= 0
}
