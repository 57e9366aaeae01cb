package coingecko

import (
	"crypto-price-sync/internal/domain/entities"
	"encoding/json"
	"fmt"
)

// SimplePriceResponse representa la respuesta de /simple/price:
// id -> { "usd": 64000.1, "usd_24h_change": -1.2 }
type SimplePriceResponse map[string]map[string]json.RawMessage

// quoteFields extrae precio y variación para un id en la moneda pedida
func quoteFields(fields map[string]json.RawMessage, vsCurrency string) (price, change float64, err error) {
	price, err = numberField(fields, vsCurrency)
	if err != nil {
		return 0, 0, err
	}

	change, err = numberField(fields, vsCurrency+"_24h_change")
	if err != nil {
		return 0, 0, err
	}

	return price, change, nil
}

// numberField lee un campo numérico; ausente, null o no numérico se considera incompleto
func numberField(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrIncompleteQuote, name)
	}

	var value *float64
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrIncompleteQuote, name)
	}

	return *value, nil
}

// ToQuotes convierte la respuesta en cotizaciones válidas, en el orden pedido.
// Los ids no pedidos o con datos incompletos quedan fuera.
func (r SimplePriceResponse) ToQuotes(requested []entities.AssetID, vsCurrency string) []entities.Quote {
	quotes := make([]entities.Quote, 0, len(requested))

	for _, id := range requested {
		fields, ok := r[string(id)]
		if !ok {
			continue
		}

		price, change, err := quoteFields(fields, vsCurrency)
		if err != nil {
			continue
		}

		quote, err := entities.NewQuote(id, price, change)
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}

	return quotes
}
