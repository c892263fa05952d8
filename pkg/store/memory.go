package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/deciviz/deciviz/pkg/errors"
)

// MemoryStore keeps documents in process memory. Documents are stored
// as marshaled JSON so callers never share mutable state with the
// store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load reads and migrates a document.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Document, error) {
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse graph %q", id)
	}
	if err := Migrate(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes a document.
func (s *MemoryStore) Save(ctx context.Context, doc *Document) error {
	stamp(doc)
	if err := errors.ValidateGraphID(doc.ID); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.docs[doc.ID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

// List returns the stored document IDs in ascending order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}

// Close discards all documents.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	s.docs = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
