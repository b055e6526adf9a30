package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/emrgen/doctrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeedFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	content := "filename,filepath,upload_date,category,tags,description,status\n" +
		"a.txt,/x/a.txt,2024-02-01 10:00:00,Projet,,plan 2023,\n" +
		"b.txt,/x/b.txt,,Personnel,cv,recruitment,Active\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reqs, err := readSeedFile(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "a.txt", reqs[0].Filename)
	assert.Equal(t, "Projet", reqs[0].Category)
	assert.False(t, reqs[0].UploadDate.IsZero())
	assert.Equal(t, "cv", reqs[1].Tags)
}

func TestReadSeedFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	content := `[{"filename":"a.txt","filepath":"/x/a.txt","category":"Other","description":"client notes"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reqs, err := readSeedFile(path)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "client notes", reqs[0].Description)

	_, err = readSeedFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.csv")
	t.Setenv("DOCTRACK_STORE_DRIVER", "csv")
	t.Setenv("DOCTRACK_STORE_PATH", path)
	t.Setenv("DOCTRACK_LOG_LEVEL", "error")

	run := func(args ...string) {
		t.Helper()
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
	}

	run("db", "migrate")
	run("add", "-n", "a.txt", "-p", "/x/a.txt", "-c", "Project", "-d", "plan 2023")
	run("add", "-n", "b.txt", "-p", "/x/b.txt", "-c", "Personnel", "-t", "cv,hr")
	run("status", "-i", "1", "-s", "Archived")
	run("list", "-c", "Personnel")
	run("stats", "--top", "3")
	run("config", "show")

	docs, err := store.NewCSVStore(path, nil).ListDocuments(context.TODO())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, model.SplitTags(docs[0].Tags), "2023")
	assert.Equal(t, "cv,hr", docs[1].Tags)
	assert.Equal(t, model.StatusArchived, docs[1].Status)

	run("delete", "-i", "0")
	docs, err = store.NewCSVStore(path, nil).ListDocuments(context.TODO())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.txt", docs[0].Filename)
}
