package logging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"
)

var levelOrder = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// StructuredLogger implementa la interfaz Logger con logging estructurado
type StructuredLogger struct {
	mu     sync.RWMutex
	config *LoggerConfig
	logger *log.Logger
}

// LogEntry representa una entrada de log estructurada
type LogEntry struct {
	Timestamp   string   `json:"timestamp"`
	Level       LogLevel `json:"level"`
	Message     string   `json:"message"`
	RequestID   string   `json:"request_id,omitempty"`
	Service     string   `json:"service"`
	Version     string   `json:"version,omitempty"`
	Environment string   `json:"environment,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Source      string   `json:"source,omitempty"`
	Fields      Fields   `json:"fields,omitempty"`
}

// NewStructuredLogger crea un nuevo logger estructurado
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	return &StructuredLogger{
		config: config,
		logger: log.New(config.Output, "", 0),
	}, nil
}

func (sl *StructuredLogger) shouldLog(level LogLevel) bool {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return levelOrder[level] >= levelOrder[sl.config.Level]
}

func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	if !sl.shouldLog(level) {
		return
	}

	entry := sl.createLogEntry(ctx, level, message, fields)

	var output string
	switch sl.config.Format {
	case FormatText:
		output = formatText(entry)
	default:
		output = formatJSON(entry)
	}

	sl.logger.Println(output)
}

// createLogEntry arma la entrada; el dominio viaja en los campos y se promueve al nivel superior
func (sl *StructuredLogger) createLogEntry(ctx context.Context, level LogLevel, message string, fields Fields) *LogEntry {
	entry := &LogEntry{
		Timestamp:   time.Now().Format(time.RFC3339),
		Level:       level,
		Message:     message,
		Service:     sl.config.Service,
		Version:     sl.config.Version,
		Environment: sl.config.Environment,
		RequestID:   GetRequestID(ctx),
	}

	if len(fields) > 0 {
		entry.Fields = make(Fields, len(fields))
		for k, v := range fields {
			if k == FieldDomain {
				if domain, ok := v.(string); ok {
					entry.Domain = domain
					continue
				}
			}
			entry.Fields[k] = v
		}
	}

	if startTime := GetStartTime(ctx); !startTime.IsZero() {
		if entry.Fields == nil {
			entry.Fields = make(Fields)
		}
		entry.Fields[FieldDuration] = float64(time.Since(startTime).Nanoseconds()) / 1e6
	}

	if sl.config.AddSource {
		entry.Source = callerName()
	}

	return entry
}

func formatJSON(entry *LogEntry) string {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf("[%s] %s - %s", entry.Level, entry.RequestID, entry.Message)
	}
	return string(jsonData)
}

func formatText(entry *LogEntry) string {
	parts := []string{entry.Timestamp, fmt.Sprintf("[%s]", entry.Level)}

	if entry.RequestID != "" {
		parts = append(parts, "req:"+entry.RequestID)
	}
	if entry.Domain != "" {
		parts = append(parts, "domain:"+entry.Domain)
	}
	parts = append(parts, entry.Message)

	result := strings.Join(parts, " ")

	if len(entry.Fields) > 0 {
		if fieldsJSON, err := json.Marshal(entry.Fields); err == nil {
			result += " fields=" + string(fieldsJSON)
		}
	}

	return result
}

// callerName obtiene la función que invocó al logger, saltando los frames internos del paquete
func callerName() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "/infrastructure/logging.") {
			name := frame.Function
			if idx := strings.LastIndex(name, "/"); idx != -1 {
				name = name[idx+1:]
			}
			return name
		}
		if !more {
			return ""
		}
	}
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

// InfoWithError logs an info message with error details
func (sl *StructuredLogger) InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelInfo, message, withError(fields, err))
}

// WarnWithError logs a warning message with error details
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, withError(fields, err))
}

// ErrorWithError logs an error message with error details
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, withError(fields, err))
}

// withError copia los campos y agrega la información del error
func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = errorType(err)
	return enriched
}

// errorType returns the innermost error message in the wrap chain as a coarse type label.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// SetLevel establece el nivel de logging
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.config.Level = level
}

// GetLevel retorna el nivel actual de logging
func (sl *StructuredLogger) GetLevel() LogLevel {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.config.Level
}
