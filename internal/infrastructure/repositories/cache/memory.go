package cache

import (
	"context"
	"crypto-price-sync/internal/domain/interfaces"
	"sync"
)

// MemoryCache implementa la interfaz Cache usando memoria local.
// No sobrevive al proceso: útil para tests y modo efímero.
type MemoryCache struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemoryCache crea una nueva instancia de cache en memoria
func NewMemoryCache() interfaces.Cache {
	return &MemoryCache{
		items: make(map[string]string),
	}
}

// Get obtiene un valor del cache
func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.items[key]
	if !exists {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set reemplaza el valor de la clave
func (c *MemoryCache) Set(ctx context.Context, key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
	return nil
}

// Delete elimina un valor del cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Close no libera nada; los datos se mantienen hasta que el proceso termina
func (c *MemoryCache) Close() error {
	return nil
}

// Size retorna el número de elementos en el cache (método auxiliar para debugging)
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
