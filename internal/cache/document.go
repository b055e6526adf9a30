package cache

import (
	"context"
	"time"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctrack_cache_hits_total",
		Help: "Number of document reads served from the snapshot cache.",
	}, []string{"kind"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctrack_cache_misses_total",
		Help: "Number of document reads that went to the store.",
	}, []string{"kind"})
	cacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "doctrack_cache_invalidations_total",
		Help: "Number of times the snapshot cache was dropped.",
	})
)

// the loaded collection lives next to the filtered results under a key no
// filter can produce
const snapshotKey = "\x00snapshot"

// Snapshot caches the loaded document collection and filtered query results.
// Entries expire after the configured TTL and are all dropped together.
type Snapshot struct {
	flag Flag
	lru  *expirable.LRU[string, []*model.Document]
}

// NewSnapshot creates a cache holding at most size entries for ttl. A nil
// flag uses a process wide MemoryFlag.
func NewSnapshot(flag Flag, size int, ttl time.Duration) *Snapshot {
	if flag == nil {
		flag = NewMemoryFlag()
	}
	if size <= 0 {
		size = 128
	}

	return &Snapshot{
		flag: flag,
		lru:  expirable.NewLRU[string, []*model.Document](size, nil, ttl),
	}
}

// Get returns a copy of the cached collection.
func (s *Snapshot) Get() ([]*model.Document, bool) {
	return s.get("snapshot", snapshotKey)
}

// Set caches a copy of the loaded collection.
func (s *Snapshot) Set(docs []*model.Document) {
	s.lru.Add(snapshotKey, model.CloneAll(docs))
}

// GetQuery returns a copy of a cached filtered result.
func (s *Snapshot) GetQuery(key string) ([]*model.Document, bool) {
	return s.get("query", key)
}

// SetQuery caches a copy of a filtered result.
func (s *Snapshot) SetQuery(key string, docs []*model.Document) {
	s.lru.Add(key, model.CloneAll(docs))
}

func (s *Snapshot) get(kind, key string) ([]*model.Document, bool) {
	docs, ok := s.lru.Get(key)
	if !ok {
		cacheMissesTotal.WithLabelValues(kind).Inc()
		return nil, false
	}

	cacheHitsTotal.WithLabelValues(kind).Inc()
	return model.CloneAll(docs), true
}

// Drop discards every cached entry.
func (s *Snapshot) Drop() {
	s.lru.Purge()
	cacheInvalidationsTotal.Inc()
}

// Invalidate drops the cache and raises the dirty flag for every reader
// sharing it.
func (s *Snapshot) Invalidate(ctx context.Context) error {
	s.Drop()
	return s.flag.Raise(ctx)
}

// Sync checks the dirty flag once. When it was raised the cache is dropped
// and the flag cleared. A flag that cannot be read is treated as raised.
func (s *Snapshot) Sync(ctx context.Context) (bool, error) {
	dirty, err := s.flag.Take(ctx)
	if err != nil {
		logrus.Warnf("dirty flag unavailable, dropping document cache: %v", err)
		s.Drop()
		return true, err
	}

	if dirty {
		s.Drop()
	}

	return dirty, nil
}
