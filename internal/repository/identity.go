package repository

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/store"
)

// Identity names how a backend addresses its records.
type Identity string

const (
	// IdentityPositional identities are row positions, renumbered from zero
	// after every delete.
	IdentityPositional Identity = "positional"
	// IdentityKeyed identities are primary keys that never change.
	IdentityKeyed Identity = "keyed"
)

// identityStrategy applies mutations to the store and returns the
// collection as it looks afterwards. Inputs are never modified.
type identityStrategy interface {
	kind() Identity
	saveBackfill(ctx context.Context, all, changed []*model.Document) error
	create(ctx context.Context, all []*model.Document, docs []*model.Document) ([]*model.Document, error)
	updateStatus(ctx context.Context, all []*model.Document, id int64, status model.Status) ([]*model.Document, error)
	remove(ctx context.Context, all []*model.Document, ids mapset.Set[int64]) ([]*model.Document, int, error)
}

func strategyFor(st store.Store) (identityStrategy, error) {
	switch s := st.(type) {
	case store.TableStore:
		return &positional{store: s}, nil
	case store.KeyedStore:
		return &keyed{store: s}, nil
	default:
		return nil, ErrUnsupportedStore
	}
}

// positional rewrites the whole table on every change
type positional struct {
	store store.TableStore
}

func (p *positional) kind() Identity {
	return IdentityPositional
}

func (p *positional) saveBackfill(ctx context.Context, all, changed []*model.Document) error {
	return p.store.ReplaceDocuments(ctx, all)
}

func (p *positional) create(ctx context.Context, all []*model.Document, docs []*model.Document) ([]*model.Document, error) {
	next := append(model.CloneAll(all), model.CloneAll(docs)...)
	model.Renumber(next)
	if err := p.store.ReplaceDocuments(ctx, next); err != nil {
		return nil, err
	}

	return next, nil
}

func (p *positional) updateStatus(ctx context.Context, all []*model.Document, id int64, status model.Status) ([]*model.Document, error) {
	next := withStatus(all, id, status)
	if err := p.store.ReplaceDocuments(ctx, next); err != nil {
		return nil, err
	}

	return next, nil
}

func (p *positional) remove(ctx context.Context, all []*model.Document, ids mapset.Set[int64]) ([]*model.Document, int, error) {
	next := without(all, ids)
	model.Renumber(next)
	if err := p.store.ReplaceDocuments(ctx, next); err != nil {
		return nil, 0, err
	}

	return next, len(all) - len(next), nil
}

// keyed issues targeted writes by primary key
type keyed struct {
	store store.KeyedStore
}

func (k *keyed) kind() Identity {
	return IdentityKeyed
}

func (k *keyed) saveBackfill(ctx context.Context, all, changed []*model.Document) error {
	return k.store.SaveDocuments(ctx, changed)
}

func (k *keyed) create(ctx context.Context, all []*model.Document, docs []*model.Document) ([]*model.Document, error) {
	created := model.CloneAll(docs)

	var err error
	if len(created) == 1 {
		err = k.store.CreateDocument(ctx, created[0])
	} else {
		err = k.store.CreateDocuments(ctx, created)
	}
	if err != nil {
		return nil, err
	}

	return append(model.CloneAll(all), created...), nil
}

func (k *keyed) updateStatus(ctx context.Context, all []*model.Document, id int64, status model.Status) ([]*model.Document, error) {
	if err := k.store.UpdateDocumentStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return withStatus(all, id, status), nil
}

func (k *keyed) remove(ctx context.Context, all []*model.Document, ids mapset.Set[int64]) ([]*model.Document, int, error) {
	n, err := k.store.DeleteDocuments(ctx, ids.ToSlice())
	if err != nil {
		return nil, 0, err
	}

	return without(all, ids), int(n), nil
}

func withStatus(all []*model.Document, id int64, status model.Status) []*model.Document {
	next := model.CloneAll(all)
	for _, doc := range next {
		if doc.ID == id {
			doc.Status = status
		}
	}

	return next
}

func without(all []*model.Document, ids mapset.Set[int64]) []*model.Document {
	next := make([]*model.Document, 0, len(all))
	for _, doc := range all {
		if !ids.Contains(doc.ID) {
			next = append(next, doc.Clone())
		}
	}

	return next
}
