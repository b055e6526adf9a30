package repository

import (
	"context"
	"sync"
	"time"

	"github.com/emrgen/doctrack/internal/cache"
	"github.com/emrgen/doctrack/internal/classify"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/store"
	"github.com/sirupsen/logrus"
)

// Option configures a Repository.
type Option func(r *Repository)

// WithEngine sets the classification engine. Tests pass a seeded engine.
func WithEngine(engine *classify.Engine) Option {
	return func(r *Repository) {
		r.engine = engine
	}
}

// WithCache sets the snapshot cache, usually one sharing a redis flag.
func WithCache(snapshot *cache.Snapshot) Option {
	return func(r *Repository) {
		r.cache = snapshot
	}
}

// WithClock sets the time source used to stamp new documents.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// Repository loads, repairs and mutates the document collection of one
// store. Operations run one at a time.
type Repository struct {
	mu     sync.Mutex
	store  store.Store
	ids    identityStrategy
	engine *classify.Engine
	cache  *cache.Snapshot
	now    func() time.Time
	// last successfully loaded collection, returned when the store fails
	last []*model.Document
}

// New creates a repository over st. The store decides the identity strategy.
func New(st store.Store, opts ...Option) (*Repository, error) {
	ids, err := strategyFor(st)
	if err != nil {
		return nil, err
	}

	r := &Repository{
		store: st,
		ids:   ids,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.engine == nil {
		r.engine = classify.New()
	}
	if r.cache == nil {
		r.cache = cache.NewSnapshot(nil, 0, 5*time.Minute)
	}
	if r.now == nil {
		r.now = func() time.Time {
			return time.Now().UTC()
		}
	}

	return r, nil
}

// Identity reports how the backing store addresses documents.
func (r *Repository) Identity() Identity {
	return r.ids.kind()
}

// Migrate creates the backend with the full schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.store.Migrate(ctx); err != nil {
		return backendError("migrate", err)
	}

	return nil
}

// Refresh checks the dirty flag once and drops the cache when another
// writer changed the store. It reports whether the cache was dropped.
func (r *Repository) Refresh(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cache.Sync(ctx)
}

// Invalidate drops the cache and raises the dirty flag.
func (r *Repository) Invalidate(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invalidate(ctx)
}

// Reload drops this repository's cache and loads the store again, repairing
// records written by other tools. Other readers are not notified.
func (r *Repository) Reload(ctx context.Context) ([]*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Drop()
	return r.load(ctx)
}

// Load returns every document, normalized and backfilled. Repairs are
// written back to the store before the collection is returned.
func (r *Repository) Load(ctx context.Context) ([]*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current(ctx)
}

// current checks the dirty flag before loading
func (r *Repository) current(ctx context.Context) ([]*model.Document, error) {
	_, _ = r.cache.Sync(ctx)
	return r.load(ctx)
}

func (r *Repository) load(ctx context.Context) ([]*model.Document, error) {
	if docs, ok := r.cache.Get(); ok {
		return docs, nil
	}

	docs, err := r.store.ListDocuments(ctx)
	if err != nil {
		logrus.Errorf("failed to load documents: %v", err)
		return model.CloneAll(r.last), backendError("load documents", err)
	}

	changed := r.backfill(docs)
	if len(changed) > 0 {
		if err := r.ids.saveBackfill(ctx, docs, changed); err != nil {
			logrus.Errorf("failed to save %d backfilled documents: %v", len(changed), err)
			return docs, backendError("save backfill", err)
		}
		logrus.Infof("backfilled %d documents", len(changed))
	}

	r.last = model.CloneAll(docs)
	r.cache.Set(docs)

	return docs, nil
}

// backfill repairs docs in place and returns the ones that changed.
func (r *Repository) backfill(docs []*model.Document) []*model.Document {
	var changed []*model.Document
	for _, doc := range docs {
		dirty := doc.Normalize()

		if doc.Tags == "" && doc.Category != "" && doc.Description != "" {
			doc.Tags = r.engine.GenerateTags(string(doc.Category), doc.Description)
			dirty = true
		}

		if doc.Status == "" && doc.Category != "" {
			doc.Status = r.engine.AssignStatus(string(doc.Category))
			dirty = true
		}

		if dirty {
			changed = append(changed, doc)
		}
	}

	return changed
}

func (r *Repository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		logrus.Warnf("failed to raise dirty flag: %v", err)
	}
}

// commit records a successful mutation.
func (r *Repository) commit(ctx context.Context, docs []*model.Document) {
	r.last = model.CloneAll(docs)
	r.invalidate(ctx)
}
