package doctrack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/repository"
	"github.com/emrgen/doctrack/internal/server"
	"github.com/emrgen/doctrack/internal/store"
	"github.com/emrgen/doctrack/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	repo, err := repository.New(store.NewGormStore(tester.TestDB(t)))
	require.NoError(t, err)

	srv := httptest.NewServer(server.NewHandler(repo))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL)
}

func TestClient(t *testing.T) {
	ctx := context.TODO()
	client := newTestClient(t)

	docs, err := client.Query(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	docs, err = client.Add(ctx, repository.AddRequest{Filename: "a.txt", Filepath: "/x/a.txt", Category: "Project", Description: "plan 2023"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	first := docs[0].ID

	n, err := client.Import(ctx, []repository.AddRequest{
		{Filename: "b.txt", Filepath: "/x/b.txt", Category: "Personnel", Description: "recruitment"},
		{Filename: "c.txt", Filepath: "/x/c.txt", Category: "Other", Tags: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	docs, err = client.Query(ctx, repository.Filter{Category: "Personnel"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, model.SplitTags(docs[0].Tags), "CV")

	ok, err := client.UpdateStatus(ctx, first, "Deleted")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.UpdateStatus(ctx, 999, "Deleted")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = client.UpdateStatus(ctx, first, "Gone")
	assert.ErrorIs(t, err, repository.ErrInvalidStatus)

	_, err = client.Add(ctx, repository.AddRequest{Filename: "d.txt"})
	assert.ErrorIs(t, err, repository.ErrMissingField)

	retagged, err := client.RegenerateTags(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, retagged)

	summary, err := client.Summary(ctx, repository.Filter{}, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Documents)

	// keyed identities survive deletes
	ok, err = client.Delete(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)

	docs, err = client.Query(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.NotEqual(t, int64(0), docs[0].ID)

	ok, count, err := client.DeleteMany(ctx, []int64{docs[0].ID, docs[1].ID, 999})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	ok, _, err = client.DeleteMany(ctx, []int64{999})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_UnknownRoute(t *testing.T) {
	ctx := context.TODO()

	repo, err := repository.New(store.NewMemoryStore(tester.SampleDocuments()...))
	require.NoError(t, err)
	srv := httptest.NewServer(server.NewHandler(repo))
	t.Cleanup(srv.Close)

	// a base url with a stray prefix matches no route
	client := NewClient(srv.URL + "/api")

	docs, err := client.Query(ctx, repository.Filter{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Nil(t, docs)

	_, err = client.Add(ctx, repository.AddRequest{Filename: "a.txt", Filepath: "/x/a.txt"})
	assert.Error(t, err)

	_, err = client.Summary(ctx, repository.Filter{}, 0)
	assert.Error(t, err)

	// id addressed calls only report found=false for a missing document
	_, err = client.Delete(ctx, 1)
	assert.Error(t, err)
}

// unreadableStore fails every read after the first
type unreadableStore struct {
	*store.MemoryStore
	reads atomic.Int32
}

func (u *unreadableStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	if u.reads.Add(1) > 1 {
		return nil, errors.New("disk unavailable")
	}
	return u.MemoryStore.ListDocuments(ctx)
}

func TestClient_QueryBackendFailure(t *testing.T) {
	ctx := context.TODO()

	repo, err := repository.New(&unreadableStore{MemoryStore: store.NewMemoryStore(tester.SampleDocuments()...)})
	require.NoError(t, err)
	_, err = repo.Load(ctx)
	require.NoError(t, err)
	repo.Invalidate(ctx)

	srv := httptest.NewServer(server.NewHandler(repo))
	t.Cleanup(srv.Close)

	docs, err := NewClient(srv.URL).Query(ctx, repository.Filter{})
	assert.ErrorIs(t, err, repository.ErrBackend)
	assert.Len(t, docs, 10)
}
