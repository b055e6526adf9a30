package repository

import (
	"context"
	"net/url"
	"strings"

	"github.com/emrgen/doctrack/internal/model"
)

// Filter selects documents. Empty fields match everything.
type Filter struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Empty reports whether the filter matches every document.
func (f Filter) Empty() bool {
	return f.Category == "" && f.Tag == "" && f.Status == ""
}

// Match reports whether doc passes the filter. Category and status match
// exactly, the tag is a case-insensitive substring of the serialized tags.
func (f Filter) Match(doc *model.Document) bool {
	if f.Category != "" && string(doc.Category) != f.Category {
		return false
	}
	if f.Status != "" && string(doc.Status) != f.Status {
		return false
	}
	if f.Tag != "" && !strings.Contains(strings.ToLower(doc.Tags), strings.ToLower(f.Tag)) {
		return false
	}

	return true
}

// Apply returns the documents passing the filter, in order.
func (f Filter) Apply(docs []*model.Document) []*model.Document {
	if f.Empty() {
		return docs
	}

	matched := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if f.Match(doc) {
			matched = append(matched, doc)
		}
	}

	return matched
}

// Key is the cache key of the filter.
func (f Filter) Key() string {
	values := url.Values{}
	values.Set("category", f.Category)
	values.Set("tag", f.Tag)
	values.Set("status", f.Status)

	return values.Encode()
}

// Query returns the documents matching the filter. Filtered results are
// cached until the next mutation.
func (r *Repository) Query(ctx context.Context, filter Filter) ([]*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = r.cache.Sync(ctx)

	if filter.Empty() {
		return r.load(ctx)
	}

	if docs, ok := r.cache.GetQuery(filter.Key()); ok {
		return docs, nil
	}

	docs, err := r.load(ctx)
	matched := filter.Apply(docs)
	if err == nil {
		r.cache.SetQuery(filter.Key(), matched)
	}

	return matched, err
}
