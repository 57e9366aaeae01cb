package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// IDGenerator genera identificadores de correlación para requests HTTP e intentos de sincronización
type IDGenerator struct {
	prefix string
}

// NewIDGenerator creates a generator; an empty prefix defaults to "req".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &IDGenerator{
		prefix: prefix,
	}
}

// Generate creates a new unique id.
// Format: {prefix}_{timestamp}_{random}
func (g *IDGenerator) Generate() string {
	timestamp := time.Now().UnixMicro()

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s_%d", g.prefix, timestamp)
	}

	return fmt.Sprintf("%s_%d_%s", g.prefix, timestamp, hex.EncodeToString(randomBytes))
}

var defaultGenerator = NewIDGenerator("req")

// GenerateRequestID generates a request ID using the default generator
func GenerateRequestID() string {
	return defaultGenerator.Generate()
}
