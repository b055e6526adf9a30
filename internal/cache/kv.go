package cache

import (
	"context"
	"sync/atomic"
)

// Flag marks the cached documents as stale after a mutation.
type Flag interface {
	// Raise marks the cache stale.
	Raise(ctx context.Context) error
	// Take reports whether the flag was raised since the last Take and clears it.
	Take(ctx context.Context) (bool, error)
}

var _ Flag = (*MemoryFlag)(nil)

// MemoryFlag is a process wide dirty flag.
type MemoryFlag struct {
	dirty atomic.Bool
}

func NewMemoryFlag() *MemoryFlag {
	return &MemoryFlag{}
}

func (m *MemoryFlag) Raise(ctx context.Context) error {
	m.dirty.Store(true)
	return nil
}

func (m *MemoryFlag) Take(ctx context.Context) (bool, error) {
	return m.dirty.Swap(false), nil
}
