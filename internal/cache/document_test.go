package cache

import (
	"context"
	"testing"
	"time"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_GetSet(t *testing.T) {
	s := NewSnapshot(nil, 16, time.Minute)

	_, ok := s.Get()
	assert.False(t, ok)

	docs := tester.SampleDocuments()
	s.Set(docs)

	got, ok := s.Get()
	require.True(t, ok)
	assert.Len(t, got, len(docs))

	// the cache holds its own copy
	got[0].Tags = "changed"
	docs[1].Tags = "changed"
	again, _ := s.Get()
	assert.NotEqual(t, "changed", again[0].Tags)
	assert.NotEqual(t, "changed", again[1].Tags)
}

func TestSnapshot_Query(t *testing.T) {
	s := NewSnapshot(nil, 16, time.Minute)
	s.SetQuery("category=Project", tester.SampleDocuments()[2:5])

	got, ok := s.GetQuery("category=Project")
	require.True(t, ok)
	assert.Len(t, got, 3)

	_, ok = s.GetQuery("category=Other")
	assert.False(t, ok)
}

func TestSnapshot_InvalidateAndSync(t *testing.T) {
	ctx := context.TODO()
	s := NewSnapshot(NewMemoryFlag(), 16, time.Minute)
	s.Set(tester.SampleDocuments())

	dirty, err := s.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
	_, ok := s.Get()
	assert.True(t, ok)

	require.NoError(t, s.Invalidate(ctx))
	_, ok = s.Get()
	assert.False(t, ok)

	s.Set([]*model.Document{{Filename: "a"}})
	dirty, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)
	_, ok = s.Get()
	assert.False(t, ok, "a raised flag drops entries cached before the check")

	// the flag is cleared by the check
	dirty, err = s.Sync(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestSnapshot_TTL(t *testing.T) {
	s := NewSnapshot(nil, 16, 50*time.Millisecond)
	s.Set(tester.SampleDocuments())

	time.Sleep(120 * time.Millisecond)
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestMemoryFlag(t *testing.T) {
	ctx := context.TODO()
	f := NewMemoryFlag()

	dirty, _ := f.Take(ctx)
	assert.False(t, dirty)

	require.NoError(t, f.Raise(ctx))
	require.NoError(t, f.Raise(ctx))
	dirty, _ = f.Take(ctx)
	assert.True(t, dirty)
	dirty, _ = f.Take(ctx)
	assert.False(t, dirty)
}

func TestRedisFlag_SharedBetweenReaders(t *testing.T) {
	ctx := context.TODO()
	client, _ := tester.Redis(t)

	a := NewRedisFlag(client, "doctrack:test:version")
	b := NewRedisFlag(client, "doctrack:test:version")

	dirty, err := a.Take(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, a.Raise(ctx))

	dirty, err = a.Take(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	dirty, err = b.Take(ctx)
	require.NoError(t, err)
	assert.True(t, dirty, "a raise is seen by every process")

	dirty, err = b.Take(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
}

func TestRedisFlag_Unavailable(t *testing.T) {
	ctx := context.TODO()
	client, server := tester.Redis(t)
	s := NewSnapshot(NewRedisFlag(client, "doctrack:test:version"), 16, time.Minute)
	s.Set(tester.SampleDocuments())

	server.Close()

	dirty, err := s.Sync(ctx)
	assert.Error(t, err)
	assert.True(t, dirty)
	_, ok := s.Get()
	assert.False(t, ok)
}
