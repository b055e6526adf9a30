package store

import (
	"context"
	"testing"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testKeyedStore(t *testing.T, db *gorm.DB) {
	ctx := context.TODO()
	s := NewGormStore(db)

	docs := tester.SampleDocuments()
	require.NoError(t, s.CreateDocuments(ctx, docs[:3]))
	for _, doc := range docs[:3] {
		assert.NotZero(t, doc.ID)
	}

	single := docs[3]
	require.NoError(t, s.CreateDocument(ctx, single))
	assert.Greater(t, single.ID, docs[2].ID)

	got, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, docs[0].Filename, got[0].Filename)
	assert.True(t, docs[0].UploadDate.Equal(got[0].UploadDate))

	require.NoError(t, s.UpdateDocumentStatus(ctx, got[1].ID, model.StatusDeleted))

	got[2].Tags = "retagged"
	got[2].Status = model.StatusArchived
	got[2].Filename = "ignored.md"
	require.NoError(t, s.SaveDocuments(ctx, []*model.Document{got[2]}))

	n, err := s.DeleteDocuments(ctx, []int64{got[0].ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	after, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, after, 3)

	// primary keys survive deletes
	assert.Equal(t, got[1].ID, after[0].ID)
	assert.Equal(t, model.StatusDeleted, after[0].Status)
	assert.Equal(t, "retagged", after[1].Tags)
	assert.Equal(t, model.StatusArchived, after[1].Status)
	assert.Equal(t, docs[2].Filename, after[1].Filename)
}

func TestGormStore_SQLite(t *testing.T) {
	testKeyedStore(t, tester.TestDB(t))
}

func TestGormStore_Postgres(t *testing.T) {
	testKeyedStore(t, tester.Postgres(t))
}

func TestGormStore_CreatesMissingTable(t *testing.T) {
	db := tester.EmptyDB(t)
	s := NewGormStore(db)

	docs, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.True(t, db.Migrator().HasTable("documents"))
}

func TestGormStore_DeleteNothing(t *testing.T) {
	n, err := NewGormStore(tester.TestDB(t)).DeleteDocuments(context.TODO(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
