package cache

import (
	"context"
	"crypto-price-sync/internal/domain/interfaces"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const tempFilePattern = ".tmp-*"

// FileCache guarda cada clave en un archivo dentro de dir.
// Las escrituras van a un temporal en el mismo directorio y luego Rename,
// así un lector nunca ve un registro a medio escribir.
type FileCache struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// NewFileCache crea el directorio si no existe
func NewFileCache(fsys afero.Fs, dir string) (*FileCache, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}

	return &FileCache{
		fs:  fsys,
		dir: dir,
	}, nil
}

var _ interfaces.Cache = (*FileCache)(nil)

func (c *FileCache) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(c.dir, key+".json"), nil
}

// Get lee el archivo de la clave
func (c *FileCache) Get(ctx context.Context, key string) (string, error) {
	path, err := c.path(key)
	if err != nil {
		return "", err
	}

	data, err := afero.ReadFile(c.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Set reemplaza el archivo de la clave de forma atómica
func (c *FileCache) Set(ctx context.Context, key string, value string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp, err := afero.TempFile(c.fs, c.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := c.fs.Rename(tmpName, path); err != nil {
		_ = c.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Delete elimina el archivo; una clave inexistente no es error
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

// Close no mantiene recursos abiertos entre operaciones
func (c *FileCache) Close() error {
	return nil
}
