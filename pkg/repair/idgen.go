package repair

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces IDs for edges created by add_edge actions that
// arrive without one. Injecting the generator keeps repair results
// reproducible in tests; production callers normally supply explicit
// IDs and never hit the fallback.
type IDGenerator func() string

// UUIDGenerator returns random edge IDs of the form "edge-<uuid>".
func UUIDGenerator() IDGenerator {
	return func() string { return "edge-" + uuid.NewString() }
}

// SequentialGenerator returns "edge-1", "edge-2", ... and is safe for
// concurrent use. Intended for tests and reproducible batch runs.
func SequentialGenerator() IDGenerator {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("edge-%d", n.Add(1)) }
}
