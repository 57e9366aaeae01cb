package logging

import (
	"context"
)

// BaseDomainLogger implementa funcionalidad común para loggers de dominio
type BaseDomainLogger struct {
	Logger
	domain string
}

// Domain retorna el dominio del logger
func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

// tag copia los campos agregando el dominio, sin mutar el mapa del llamador
func (dl *BaseDomainLogger) tag(fields Fields) Fields {
	tagged := make(Fields, len(fields)+1)
	for k, v := range fields {
		tagged[k] = v
	}
	tagged[FieldDomain] = dl.domain
	return tagged
}

func (dl *BaseDomainLogger) logWithDomain(ctx context.Context, level LogLevel, message string, fields Fields) {
	fields = dl.tag(fields)

	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelInfo:
		dl.Logger.Info(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.InfoWithError(ctx, message, err, dl.tag(fields))
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.tag(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.tag(fields))
}

// HTTPDomainLogger especializado para el presenter HTTP
type HTTPDomainLogger struct {
	*BaseDomainLogger
}

// NewHTTPLogger crea un nuevo logger HTTP
func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "http",
		},
	}
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithCustomField(FieldDuration, duration).
		Build()

	level := LevelInfo
	if statusCode >= 500 {
		level = LevelError
	} else if statusCode >= 400 {
		level = LevelWarn
	}

	hl.logWithDomain(ctx, level, "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldHTTPPath, endpoint).
		Build()

	hl.Warn(ctx, "Refresh intent rate limit exceeded", fields)
}

// ExternalAPIDomainLogger especializado para APIs externas
type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

// NewExternalAPILogger crea un nuevo logger para APIs externas
func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "external_api",
		},
	}
}

func (el *ExternalAPIDomainLogger) RequestStarted(ctx context.Context, service, endpoint, method string) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, 0).
		WithCustomField(FieldExternalMethod, method).
		Build()

	el.Debug(ctx, "External API request started", fields)
}

func (el *ExternalAPIDomainLogger) RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode).
		WithCustomField(FieldExternalDuration, duration).
		Build()

	el.Info(ctx, "External API request completed", fields)
}

// RequestFailed se registra como WARN: la falla del endpoint remoto es un estado esperado (modo offline)
func (el *ExternalAPIDomainLogger) RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode).
		WithCustomField(FieldExternalDuration, duration).
		Build()

	el.WarnWithError(ctx, "External API request failed", err, fields)
}

// CacheDomainLogger especializado para cache
type CacheDomainLogger struct {
	*BaseDomainLogger
}

// NewCacheLogger crea un nuevo logger de cache
func NewCacheLogger(baseLogger Logger) CacheLogger {
	return &CacheDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "cache",
		},
	}
}

func (cl *CacheDomainLogger) Hit(ctx context.Context, key string, operation string) {
	cl.Debug(ctx, "Cache hit", NewFieldBuilder().WithCache(operation, key, true).Build())
}

func (cl *CacheDomainLogger) Miss(ctx context.Context, key string, operation string) {
	cl.Debug(ctx, "Cache miss", NewFieldBuilder().WithCache(operation, key, false).Build())
}

func (cl *CacheDomainLogger) Stored(ctx context.Context, key string, sizeBytes int) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheKey, key).
		WithCustomField(FieldCacheOperation, CacheOpSet).
		WithCustomField(FieldCacheSize, sizeBytes).
		Build()

	cl.Debug(ctx, "Cache set", fields)
}

func (cl *CacheDomainLogger) CacheError(ctx context.Context, operation, key string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldCacheOperation, operation).
		WithCustomField(FieldCacheKey, key).
		Build()

	cl.WarnWithError(ctx, "Cache operation failed", err, fields)
}

// SyncDomainLogger especializado para el controlador de sincronización
type SyncDomainLogger struct {
	*BaseDomainLogger
}

// NewSyncLogger crea un nuevo logger de sincronización
func NewSyncLogger(baseLogger Logger) SyncLogger {
	return &SyncDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "sync",
		},
	}
}

func (sl *SyncDomainLogger) FetchStarted(ctx context.Context, trigger string, assets int) {
	fields := NewFieldBuilder().
		WithCustomField(FieldTrigger, trigger).
		WithCustomField(FieldAssets, assets).
		Build()

	sl.Debug(ctx, "Quote fetch started", fields)
}

func (sl *SyncDomainLogger) FetchSucceeded(ctx context.Context, trigger string, quotes int, duration float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldTrigger, trigger).
		WithCustomField(FieldQuotes, quotes).
		WithCustomField(FieldDuration, duration).
		Build()

	sl.Info(ctx, "Quote fetch succeeded", fields)
}

func (sl *SyncDomainLogger) FetchFailed(ctx context.Context, trigger string, err error, userFacing bool) {
	fields := NewFieldBuilder().
		WithCustomField(FieldTrigger, trigger).
		WithCustomField(FieldUserFacing, userFacing).
		Build()

	sl.WarnWithError(ctx, "Quote fetch failed", err, fields)
}

func (sl *SyncDomainLogger) RefreshIgnored(ctx context.Context, reason string) {
	sl.Info(ctx, "Refresh request ignored", Fields{FieldReason: reason})
}
