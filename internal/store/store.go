package store

import (
	"context"

	"github.com/emrgen/doctrack/internal/model"
)

// Store is the minimal contract of a document backend.
type Store interface {
	// Migrate makes sure the backend exists with the full schema.
	Migrate(ctx context.Context) error
	// ListDocuments reads every stored record. A missing or empty backend
	// is initialized and yields an empty list.
	ListDocuments(ctx context.Context) ([]*model.Document, error)
}

// TableStore is a backend addressed by row position. Every mutation rewrites
// the whole table, so identities are renumbered from zero on each write.
type TableStore interface {
	Store
	// ReplaceDocuments overwrites the stored table with docs, in order.
	ReplaceDocuments(ctx context.Context, docs []*model.Document) error
}

// KeyedStore is a backend with stable primary keys.
type KeyedStore interface {
	Store
	// CreateDocument inserts doc and sets its ID.
	CreateDocument(ctx context.Context, doc *model.Document) error
	// CreateDocuments inserts docs in one batch and sets their IDs.
	CreateDocuments(ctx context.Context, docs []*model.Document) error
	// SaveDocuments updates the tags and status of existing docs.
	SaveDocuments(ctx context.Context, docs []*model.Document) error
	// UpdateDocumentStatus sets the status of one document.
	UpdateDocumentStatus(ctx context.Context, id int64, status model.Status) error
	// DeleteDocuments removes the documents with the given IDs.
	DeleteDocuments(ctx context.Context, ids []int64) (int64, error)
}
