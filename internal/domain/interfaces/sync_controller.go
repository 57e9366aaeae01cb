package interfaces

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
)

// SyncController is the API the presentation layer consumes.
type SyncController interface {
	Initialize(ctx context.Context)
	Refresh(ctx context.Context) bool
	State() entities.ViewState
	Subscribe() (<-chan entities.ViewState, func())
}
