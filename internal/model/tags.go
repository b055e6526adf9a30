package model

import (
	"strconv"
	"strings"
)

const (
	// TagSeparator joins tags in the serialized form.
	TagSeparator = ","
	// MaxTags caps the number of tags kept on a document.
	MaxTags = 5
	// UnclassifiedTag marks a document that could not be classified.
	UnclassifiedTag = "unclassified"
)

// textual forms of "no value" left behind by spreadsheet tools
var nullMarkers = map[string]struct{}{
	"nan":    {},
	"none":   {},
	"null":   {},
	"nil":    {},
	"<na>":   {},
	"nat":    {},
	"n/a":    {},
	"<nil>":  {},
	"undef":  {},
	"(null)": {},
}

// NormalizeTags clears null markers and float artifacts such as "0.0". Any
// other value is returned trimmed.
func NormalizeTags(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if _, ok := nullMarkers[strings.ToLower(value)]; ok {
		return ""
	}

	if isFloatArtifact(value) {
		return ""
	}

	return value
}

// a bare integer such as "2023" is a legitimate tag, "0.0" or "1e3" is not
func isFloatArtifact(value string) bool {
	if !strings.ContainsAny(value, ".eE") {
		return false
	}

	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}

// SplitTags splits a serialized tag string, trimming every token and
// dropping empty ones.
func SplitTags(serialized string) []string {
	parts := strings.Split(serialized, TagSeparator)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}

// TagList is an insertion ordered set of tags.
type TagList struct {
	tags []string
	seen map[string]struct{}
}

// NewTagList creates a list seeded with tags, in order.
func NewTagList(tags ...string) *TagList {
	l := &TagList{seen: make(map[string]struct{})}
	l.Add(tags...)
	return l
}

// Add appends the tags that are not yet present.
func (l *TagList) Add(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := l.seen[tag]; ok {
			continue
		}
		l.seen[tag] = struct{}{}
		l.tags = append(l.tags, tag)
	}
}

// Contains reports whether tag is present.
func (l *TagList) Contains(tag string) bool {
	_, ok := l.seen[tag]
	return ok
}

// Len returns the number of tags.
func (l *TagList) Len() int {
	return len(l.tags)
}

// Truncate keeps the first n tags.
func (l *TagList) Truncate(n int) {
	if n < 0 || n >= len(l.tags) {
		return
	}

	for _, tag := range l.tags[n:] {
		delete(l.seen, tag)
	}
	l.tags = l.tags[:n]
}

// Slice returns a copy of the tags.
func (l *TagList) Slice() []string {
	out := make([]string, len(l.tags))
	copy(out, l.tags)
	return out
}

// String returns the serialized form.
func (l *TagList) String() string {
	return strings.Join(l.tags, TagSeparator)
}

// CleanTags dedupes and caps caller supplied tags, returning the serialized form.
func CleanTags(serialized string) string {
	l := NewTagList(SplitTags(NormalizeTags(serialized))...)
	l.Truncate(MaxTags)
	return l.String()
}
