// Package store persists graph documents with schema versioning.
//
// Documents carry a schema version so older files and database records
// stay readable: every backend runs Migrate on read, upgrading the
// document in memory before handing it to the caller. Writes always
// stamp the current version.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/deciviz/deciviz/pkg/errors"
	"github.com/deciviz/deciviz/pkg/graph"
	"github.com/deciviz/deciviz/pkg/observability"
)

// CurrentSchemaVersion is the version stamped on every write.
//
// History:
//   - 1: initial format, node kinds stored as free-form strings
//   - 2: node kinds normalized to the canonical set on write
const CurrentSchemaVersion = 2

// Document is a stored graph with its metadata.
type Document struct {
	ID            string      `json:"id" bson:"_id"`
	SchemaVersion int         `json:"schema_version" bson:"schema_version"`
	Name          string      `json:"name,omitempty" bson:"name,omitempty"`
	Graph         graph.Graph `json:"graph" bson:"graph"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" bson:"updated_at"`
}

// Store persists graph documents.
type Store interface {
	// Load reads a document by ID, migrating it to the current schema
	// version. Returns ErrCodeGraphNotFound when the ID is unknown.
	Load(ctx context.Context, id string) (*Document, error)

	// Save writes a document, stamping timestamps and the current
	// schema version. An existing document with the same ID is
	// replaced.
	Save(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored document IDs in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Migrate upgrades a document to the current schema version in place.
// Returns an error for versions newer than this build understands.
func Migrate(ctx context.Context, doc *Document) error {
	if doc.SchemaVersion > CurrentSchemaVersion {
		return errors.New(errors.ErrCodeUnsupported,
			"document %s has schema version %d, newer than supported version %d",
			doc.ID, doc.SchemaVersion, CurrentSchemaVersion)
	}

	from := doc.SchemaVersion
	if from == 0 {
		from = 1
	}

	for v := from; v < CurrentSchemaVersion; v++ {
		switch v {
		case 1:
			// v1 documents may carry legacy kind spellings.
			doc.Graph.NormalizeKinds()
		}
	}

	if from != CurrentSchemaVersion {
		observability.Store().OnMigrate(ctx, doc.ID, from, CurrentSchemaVersion)
	}
	doc.SchemaVersion = CurrentSchemaVersion
	return nil
}

// stamp fills in the ID, timestamps, and schema version before a write.
func stamp(doc *Document) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.SchemaVersion = CurrentSchemaVersion
}

// notFound builds the standard missing-document error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeGraphNotFound, "graph %q not found", id)
}
