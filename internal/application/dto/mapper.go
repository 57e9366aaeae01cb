package dto

import (
	"crypto-price-sync/internal/domain/entities"
)

// ViewStateMapper convierte el ViewState del dominio a DTOs de presentación
type ViewStateMapper struct{}

// NewViewStateMapper crea una nueva instancia del mapper
func NewViewStateMapper() *ViewStateMapper {
	return &ViewStateMapper{}
}

// ToPricesResponse convierte el estado; quotes nunca es nil para que el JSON sea []
func (m *ViewStateMapper) ToPricesResponse(state entities.ViewState) PricesResponse {
	resp := PricesResponse{
		Phase:        string(state.Phase()),
		Quotes:       make([]QuoteData, 0, state.Snapshot.Len()),
		IsLoading:    state.IsLoading,
		IsRefreshing: state.IsRefreshing,
		IsOffline:    state.IsOffline,
		ErrorMessage: state.ErrorMessage,
	}

	if state.LastUpdatedAt != nil {
		t := *state.LastUpdatedAt
		resp.LastUpdatedAt = &t
	}

	// el banner offline solo tiene sentido si hay datos en cache que mostrar
	if state.IsOffline && state.HasData() {
		resp.Banner = OfflineBanner
	}

	if state.Snapshot != nil {
		for _, q := range state.Snapshot.Quotes {
			resp.Quotes = append(resp.Quotes, m.toQuoteData(q))
		}
	}

	return resp
}

// ToRefreshResponse combina el resultado del intento con el estado resultante
func (m *ViewStateMapper) ToRefreshResponse(started bool, state entities.ViewState) RefreshResponse {
	return RefreshResponse{
		Started: started,
		State:   m.ToPricesResponse(state),
	}
}

func (m *ViewStateMapper) toQuoteData(q entities.Quote) QuoteData {
	info, _ := entities.LookupAsset(q.ID)

	direction := DirectionDown
	if q.IsPositive() {
		direction = DirectionUp
	}

	return QuoteData{
		ID:        string(q.ID),
		Name:      info.Name,
		Symbol:    info.Symbol,
		Icon:      info.Icon,
		Price:     q.PriceUSD,
		Change24h: q.Change24hPct,
		Direction: direction,
	}
}
