package store

import (
	"context"
	"sync"

	"github.com/emrgen/doctrack/internal/model"
)

var _ TableStore = (*MemoryStore)(nil)

// MemoryStore is an in-process table. It behaves like the flat file: rows
// are addressed by position and renumbered on every write.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []*model.Document
}

func NewMemoryStore(docs ...*model.Document) *MemoryStore {
	s := &MemoryStore{}
	s.docs = model.CloneAll(docs)
	model.Renumber(s.docs)
	return s
}

func (m *MemoryStore) Migrate(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := model.CloneAll(m.docs)
	model.Renumber(docs)
	return docs, nil
}

func (m *MemoryStore) ReplaceDocuments(ctx context.Context, docs []*model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs = model.CloneAll(docs)
	model.Renumber(m.docs)
	return nil
}
