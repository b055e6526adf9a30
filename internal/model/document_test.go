package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw   string
		want  Category
		known bool
	}{
		{raw: "Administrative", want: CategoryAdministrative, known: true},
		{raw: "project", want: CategoryProject, known: true},
		{raw: " Personnel ", want: CategoryPersonnel, known: true},
		{raw: "Administratif", want: CategoryAdministrative, known: true},
		{raw: "Projet", want: CategoryProject, known: true},
		{raw: "Autre", want: CategoryOther, known: true},
		{raw: "Finance", want: CategoryOther, known: false},
		{raw: "", want: "", known: false},
		{raw: "   ", want: "", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, known := ParseCategory(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, ok := ParseStatus("archived")
	assert.True(t, ok)
	assert.Equal(t, StatusArchived, got)

	got, ok = ParseStatus("Supprimé")
	assert.True(t, ok)
	assert.Equal(t, StatusDeleted, got)

	_, ok = ParseStatus("Pending")
	assert.False(t, ok)

	assert.True(t, StatusActive.Valid())
	assert.False(t, Status("active").Valid())
	assert.False(t, Status("").Valid())
}

func TestDocument_Normalize(t *testing.T) {
	doc := &Document{
		Category: "Projet",
		Tags:     "0.0",
		Status:   "Actif",
	}

	assert.True(t, doc.Normalize())
	assert.Equal(t, CategoryProject, doc.Category)
	assert.Equal(t, "", doc.Tags)
	assert.Equal(t, StatusActive, doc.Status)

	// a normalized record is left alone
	assert.False(t, doc.Normalize())

	unknown := &Document{Category: "Legal", Status: "Pending", Tags: "a,b"}
	assert.True(t, unknown.Normalize())
	assert.Equal(t, CategoryOther, unknown.Category)
	assert.Equal(t, Status("Pending"), unknown.Status)
	assert.Equal(t, "a,b", unknown.Tags)
}

func TestCloneAllAndRenumber(t *testing.T) {
	docs := []*Document{{ID: 7, Filename: "a"}, {ID: 9, Filename: "b"}}
	clones := CloneAll(docs)
	Renumber(clones)

	assert.Equal(t, int64(0), clones[0].ID)
	assert.Equal(t, int64(1), clones[1].ID)
	assert.Equal(t, int64(7), docs[0].ID)

	clones[0].Filename = "changed"
	assert.Equal(t, "a", docs[0].Filename)
}

func TestDocumentRow_RoundTrip(t *testing.T) {
	uploaded := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	doc := &Document{
		ID:          3,
		Filename:    "plan.pdf",
		Filepath:    "/docs/plan.pdf",
		UploadDate:  uploaded,
		Category:    CategoryProject,
		Tags:        "planning,2024",
		Description: "plan 2024",
		Status:      StatusActive,
	}

	row := NewDocumentRow(doc)
	assert.Equal(t, "2024-03-05T10:30:00Z", row.UploadDate)
	assert.Equal(t, "documents", row.TableName())

	back := row.Document()
	assert.Equal(t, doc, back)

	row.UploadDate = "garbage"
	assert.True(t, row.Document().UploadDate.IsZero())
}
