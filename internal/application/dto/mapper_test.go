package dto

import (
	"crypto-price-sync/internal/domain/entities"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuote(t *testing.T, id entities.AssetID, price, change float64) entities.Quote {
	t.Helper()
	q, err := entities.NewQuote(id, price, change)
	require.NoError(t, err)
	return q
}

func TestViewStateMapper_ToPricesResponse(t *testing.T) {
	mapper := NewViewStateMapper()
	updated := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	snapshot := entities.NewSnapshot([]entities.Quote{
		mustQuote(t, entities.Solana, 150, -3),
		mustQuote(t, entities.Bitcoin, 64000, 0),
	}, updated)

	tests := []struct {
		name   string
		state  entities.ViewState
		verify func(t *testing.T, resp PricesResponse)
	}{
		{
			name:  "cold state has empty quotes array",
			state: entities.ViewState{},
			verify: func(t *testing.T, resp PricesResponse) {
				assert.Equal(t, "cold", resp.Phase)
				assert.NotNil(t, resp.Quotes)
				assert.Empty(t, resp.Quotes)
				assert.Nil(t, resp.LastUpdatedAt)
			},
		},
		{
			name:  "fresh data in enumeration order",
			state: entities.ViewState{Snapshot: snapshot, LastUpdatedAt: &updated},
			verify: func(t *testing.T, resp PricesResponse) {
				assert.Equal(t, "ready_fresh", resp.Phase)
				require.Len(t, resp.Quotes, 2)
				assert.Equal(t, QuoteData{
					ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Icon: "₿",
					Price: 64000, Change24h: 0, Direction: DirectionUp,
				}, resp.Quotes[0])
				assert.Equal(t, DirectionDown, resp.Quotes[1].Direction)
				assert.Empty(t, resp.Banner)
				assert.Equal(t, updated, *resp.LastUpdatedAt)
			},
		},
		{
			name:  "offline with data shows banner",
			state: entities.ViewState{Snapshot: snapshot, LastUpdatedAt: &updated, IsOffline: true},
			verify: func(t *testing.T, resp PricesResponse) {
				assert.Equal(t, "ready_stale_offline", resp.Phase)
				assert.Equal(t, OfflineBanner, resp.Banner)
			},
		},
		{
			name:  "offline without data shows only the error",
			state: entities.ViewState{IsOffline: true, ErrorMessage: "network error: HTTP error! status: 500"},
			verify: func(t *testing.T, resp PricesResponse) {
				assert.Equal(t, "failed", resp.Phase)
				assert.Empty(t, resp.Banner)
				assert.Equal(t, "network error: HTTP error! status: 500", resp.ErrorMessage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, mapper.ToPricesResponse(tt.state))
		})
	}
}

func TestViewStateMapper_JSONShape(t *testing.T) {
	body, err := json.Marshal(NewViewStateMapper().ToRefreshResponse(false, entities.ViewState{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"started": false,
		"state": {"phase":"cold","quotes":[],"is_loading":false,"is_refreshing":false,"is_offline":false}
	}`, string(body))
}
