package logging

import (
	"fmt"
	"sync"
)

// LoggerFactory facilita la creación de diferentes tipos de loggers
type LoggerFactory struct {
	baseLogger Logger
}

// NewLoggerFactory crea una nueva factory de loggers
func NewLoggerFactory(config *LoggerConfig) (*LoggerFactory, error) {
	baseLogger, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}

	return &LoggerFactory{
		baseLogger: baseLogger,
	}, nil
}

// LoggerSet contiene todos los loggers especializados
type LoggerSet struct {
	Base        Logger
	HTTP        HTTPLogger
	ExternalAPI ExternalAPILogger
	Cache       CacheLogger
	Sync        SyncLogger
}

// GetLoggerSet retorna un set completo de loggers especializados
func (f *LoggerFactory) GetLoggerSet() *LoggerSet {
	return &LoggerSet{
		Base:        f.baseLogger,
		HTTP:        NewHTTPLogger(f.baseLogger),
		ExternalAPI: NewExternalAPILogger(f.baseLogger),
		Cache:       NewCacheLogger(f.baseLogger),
		Sync:        NewSyncLogger(f.baseLogger),
	}
}

var (
	globalMu      sync.RWMutex
	globalFactory *LoggerFactory
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers inicializa los loggers globales
func InitializeGlobalLoggers(config *LoggerConfig) error {
	factory, err := NewLoggerFactory(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalFactory = factory
	globalLoggers = factory.GetLoggerSet()
	return nil
}

// GetGlobalLoggers retorna todos los loggers globales, creando el set por defecto si hace falta
func GetGlobalLoggers() *LoggerSet {
	globalMu.RLock()
	loggers := globalLoggers
	globalMu.RUnlock()

	if loggers != nil {
		return loggers
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		factory, _ := NewLoggerFactory(DefaultConfig())
		globalFactory = factory
		globalLoggers = factory.GetLoggerSet()
	}
	return globalLoggers
}

// SetGlobalLogLevel actualiza el nivel de log global
func SetGlobalLogLevel(level LogLevel) {
	GetGlobalLoggers()

	globalMu.RLock()
	defer globalMu.RUnlock()
	globalFactory.baseLogger.SetLevel(level)
}

// ConfigFromSettings arma la configuración del logger a partir de los valores cargados por viper
func ConfigFromSettings(service, version, environment, level, format string) *LoggerConfig {
	config := NewConfig(service, version, environment).
		WithLevel(LogLevelFromString(level)).
		WithFormat(LogFormatFromString(format))

	if environment == "development" {
		config.WithSource(true)
	}
	return config
}
