package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Health and layout entries are keyed by
// content hash, so stale reads are impossible; the TTLs only bound
// storage growth.
const (
	TTLGraph  = 24 * time.Hour
	TTLHealth = 12 * time.Hour
	TTLLayout = 12 * time.Hour
	TTLExport = 6 * time.Hour
)

// Cache is a byte-oriented cache with TTL support. A miss is reported
// through the bool, not an error; errors are reserved for backend
// failures.
type Cache interface {
	// Get retrieves a value. Returns (data, true, nil) on a hit and
	// (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages. Keys derived
// from the same inputs are identical across processes, so separate
// workers share entries.
type Keyer interface {
	// GraphKey generates a key for a stored graph document.
	GraphKey(graphID string) string

	// HealthKey generates a key for a validation report. The hash is
	// the canonical graph hash, so any edit invalidates the entry.
	HealthKey(graphHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ExportKey generates a key for a rendered artifact.
	ExportKey(layoutHash string, opts ExportKeyOpts) string
}

// LayoutKeyOpts are the inputs that change a layout result.
type LayoutKeyOpts struct {
	Preset      string
	Spacing     string
	Direction   string
	Grid        float64
	Column      float64
	Row         float64
	Risk        string
	OutcomeLast bool
	GoalFirst   bool
	PreserveIDs []string
}

// ExportKeyOpts are the inputs that change a rendered artifact.
type ExportKeyOpts struct {
	Format string
}

// DefaultKeyer generates hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a stored graph document.
func (k *DefaultKeyer) GraphKey(graphID string) string {
	return "graph:" + graphID
}

// HealthKey generates a key for a validation report.
func (k *DefaultKeyer) HealthKey(graphHash string) string {
	return "health:" + graphHash
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ExportKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return hashKey("export", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
