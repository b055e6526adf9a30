package model

import (
	"strings"
	"time"
)

// Category is the fixed classification bucket of a document.
type Category string

const (
	CategoryAdministrative Category = "Administrative"
	CategoryProject        Category = "Project"
	CategoryPersonnel      Category = "Personnel"
	CategoryOther          Category = "Other"
)

// Categories lists the recognized categories in display order.
var Categories = []Category{
	CategoryAdministrative,
	CategoryProject,
	CategoryPersonnel,
	CategoryOther,
}

// legacy labels written by the first version of the tracker
var categoryAliases = map[string]Category{
	"administratif": CategoryAdministrative,
	"projet":        CategoryProject,
	"autre":         CategoryOther,
}

// ParseCategory maps a raw value onto a known category. The boolean is false
// when the value is not recognized; empty input yields ("", false).
func ParseCategory(raw string) (Category, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	for _, c := range Categories {
		if strings.EqualFold(value, string(c)) {
			return c, true
		}
	}

	if c, ok := categoryAliases[strings.ToLower(value)]; ok {
		return c, true
	}

	return CategoryOther, false
}

// NormalizeCategory keeps empty values empty and coerces anything unknown to Other.
func NormalizeCategory(raw string) Category {
	c, _ := ParseCategory(raw)
	return c
}

// Status is the lifecycle state of a document.
type Status string

const (
	StatusActive   Status = "Active"
	StatusArchived Status = "Archived"
	StatusDeleted  Status = "Deleted"
)

// Statuses lists the valid statuses.
var Statuses = []Status{StatusActive, StatusArchived, StatusDeleted}

var statusAliases = map[string]Status{
	"actif":    StatusActive,
	"archivé":  StatusArchived,
	"archive":  StatusArchived,
	"supprimé": StatusDeleted,
	"supprime": StatusDeleted,
}

// ParseStatus returns the status matching raw, case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	value := strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(value, string(s)) {
			return s, true
		}
	}

	if s, ok := statusAliases[strings.ToLower(value)]; ok {
		return s, true
	}

	return "", false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}

	return false
}

// Document is a single metadata record.
type Document struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	Filepath    string    `json:"filepath"`
	UploadDate  time.Time `json:"upload_date"`
	Category    Category  `json:"category"`
	Tags        string    `json:"tags"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
}

// Clone returns a copy that shares no state with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Normalize repairs a freshly decoded record in place: known aliases are
// mapped to the enumeration, unknown categories become Other and tag
// artifacts are cleared. It reports whether anything changed.
func (d *Document) Normalize() bool {
	changed := false

	if category := NormalizeCategory(string(d.Category)); category != d.Category {
		d.Category = category
		changed = true
	}

	if status := strings.TrimSpace(string(d.Status)); status != "" {
		if s, ok := ParseStatus(status); ok && s != d.Status {
			d.Status = s
			changed = true
		}
	} else if d.Status != "" {
		d.Status = ""
		changed = true
	}

	if tags := NormalizeTags(d.Tags); tags != d.Tags {
		d.Tags = tags
		changed = true
	}

	return changed
}

// CloneAll deep copies a slice of documents.
func CloneAll(docs []*Document) []*Document {
	out := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Clone())
	}

	return out
}

// Renumber assigns contiguous positional identities starting at zero.
func Renumber(docs []*Document) {
	for i, doc := range docs {
		doc.ID = int64(i)
	}
}
