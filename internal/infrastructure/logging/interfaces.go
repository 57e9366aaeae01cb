package logging

import (
	"context"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger representa loggers especializados por dominio
type DomainLogger interface {
	Logger

	Domain() string
}

// HTTPLogger especializado para el presenter HTTP
type HTTPLogger interface {
	DomainLogger

	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
}

// ExternalAPILogger especializado para logs de APIs externas
type ExternalAPILogger interface {
	DomainLogger

	RequestStarted(ctx context.Context, service, endpoint, method string)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64)
}

// CacheLogger especializado para logs relacionados con cache
type CacheLogger interface {
	DomainLogger

	Hit(ctx context.Context, key string, operation string)
	Miss(ctx context.Context, key string, operation string)
	Stored(ctx context.Context, key string, sizeBytes int)
	CacheError(ctx context.Context, operation, key string, err error)
}

// SyncLogger especializado para el controlador de sincronización
type SyncLogger interface {
	DomainLogger

	FetchStarted(ctx context.Context, trigger string, assets int)
	FetchSucceeded(ctx context.Context, trigger string, quotes int, duration float64)
	FetchFailed(ctx context.Context, trigger string, err error, userFacing bool)
	RefreshIgnored(ctx context.Context, reason string)
}
