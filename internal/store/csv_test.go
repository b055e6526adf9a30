package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emrgen/doctrack/internal/compress"
	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/tester"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "filename,filepath,upload_date,category,tags,description,status\n"

func TestCSVStore_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "documents.csv")
	s := NewCSVStore(path, nil)

	docs, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, docs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header, string(data))
}

func TestCSVStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := NewCSVStore(path, nil)
	docs, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, docs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header, string(data))
}

func TestCSVStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	s := NewCSVStore(path, nil)

	docs := tester.SampleDocuments()
	docs[0].Description = "quoted, \"description\"\nwith a newline"
	require.NoError(t, s.ReplaceDocuments(context.TODO(), docs))

	got, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	require.Len(t, got, len(docs))

	for i, doc := range got {
		assert.Equal(t, int64(i), doc.ID)
		assert.Equal(t, docs[i].Filename, doc.Filename)
		assert.Equal(t, docs[i].Description, doc.Description)
		assert.Equal(t, docs[i].Tags, doc.Tags)
		assert.Equal(t, docs[i].Status, doc.Status)
		assert.True(t, docs[i].UploadDate.Equal(doc.UploadDate))
	}

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCSVStore_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	content := "filename,filepath,upload_date,category,description\n" +
		"a.txt,/x/a.txt,2024-02-01 10:00:00,Project,plan 2023\n" +
		"b.txt,/x/b.txt,not a date,Administratif,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewCSVStore(path, nil)
	docs, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "", docs[0].Tags)
	assert.Equal(t, model.Status(""), docs[0].Status)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), docs[0].UploadDate)
	assert.True(t, docs[1].UploadDate.IsZero())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), header), "header repaired: %s", data)

	// the repaired file is read without another rewrite
	info, err := os.Stat(path)
	require.NoError(t, err)
	_, err = s.ListDocuments(context.TODO())
	require.NoError(t, err)
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestCSVStore_ShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	content := header + "a.txt,/x/a.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := NewCSVStore(path, nil).ListDocuments(context.TODO())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "/x/a.txt", docs[0].Filepath)
	assert.Equal(t, model.Category(""), docs[0].Category)
}

func TestCSVStore_Compressed(t *testing.T) {
	for _, name := range []string{"gzip", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			codec, err := compress.New(name)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "documents.csv."+name)
			s := NewCSVStore(path, codec)

			docs := tester.SampleDocuments()
			require.NoError(t, s.ReplaceDocuments(context.TODO(), docs))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.False(t, strings.HasPrefix(string(raw), "filename"))

			got, err := s.ListDocuments(context.TODO())
			require.NoError(t, err)
			assert.Len(t, got, len(docs))
			assert.Equal(t, docs[2].Tags, got[2].Tags)
		})
	}
}

func TestCSVStore_CorruptCompressedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o644))

	_, err := NewCSVStore(path, compress.NewGZip()).ListDocuments(context.TODO())
	assert.Error(t, err)
}

func TestCSVStore_Migrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	s := NewCSVStore(path, nil)
	require.NoError(t, s.Migrate(context.TODO()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header, string(data))

	require.NoError(t, s.ReplaceDocuments(context.TODO(), tester.SampleDocuments()[:1]))
	require.NoError(t, s.Migrate(context.TODO()))

	docs, err := s.ListDocuments(context.TODO())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
