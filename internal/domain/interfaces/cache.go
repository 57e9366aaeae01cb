package interfaces

import "context"

// Cache es el contrato clave/valor de los backends de persistencia
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
