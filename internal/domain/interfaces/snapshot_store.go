package interfaces

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
)

// SnapshotStore persiste el último snapshot obtenido con éxito (un solo slot)
type SnapshotStore interface {
	// Read returns the stored snapshot; corrupt or unreadable records are reported as absent.
	Read(ctx context.Context) (*entities.Snapshot, bool)

	// Write replaces the stored snapshot atomically.
	Write(ctx context.Context, snapshot *entities.Snapshot) error
}
