package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/gogotex/datastore/internal/document"
)

// MemoryRepo is an in-process repository used for tests, local runs and the
// memory store backend. Contents are lost on restart.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs []document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(_ context.Context, doc document.Document) error {
	if doc == nil {
		return ErrNotObject
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, maps.Clone(doc))
	return nil
}

func (m *MemoryRepo) ListAll(_ context.Context) ([]document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]document.Document, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d.WithoutID())
	}
	return out, nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }
