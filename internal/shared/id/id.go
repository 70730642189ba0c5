// Package id provides typed ULID generation for sessions and document
// generations. ULIDs are k-sortable, so generation IDs order by commit
// time, and the prefixes keep logs readable.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionID identifies a document session.
type SessionID string

// GenerationID identifies one committed document generation within a
// session.
type GenerationID string

const (
	sessionPrefix    = "sess"
	generationPrefix = "gen"
)

// Generator generates ULIDs from an entropy source.
type Generator struct {
	entropy io.Reader
	mu      sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator backed by crypto/rand.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator(rand.Reader)
	})
	return defaultGenerator
}

// NewGenerator creates a generator with the given entropy source,
// useful for deterministic tests.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewSessionID generates a new session ID.
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(sessionPrefix))
}

// NewGenerationID generates a new document-generation ID.
func NewGenerationID() GenerationID {
	return GenerationID(Default().GenerateWithPrefix(generationPrefix))
}

func (id SessionID) String() string    { return string(id) }
func (id GenerationID) String() string { return string(id) }

// IsValid checks whether id is a valid bare ULID.
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}
