package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "float artifact", raw: "0.0", want: ""},
		{name: "exponent", raw: "1e3", want: ""},
		{name: "nan", raw: "nan", want: ""},
		{name: "NaN", raw: "NaN", want: ""},
		{name: "pandas NA", raw: "<NA>", want: ""},
		{name: "year", raw: "2023", want: "2023"},
		{name: "tags", raw: " budget,report ", want: "budget,report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.raw))
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitTags(" a, b,,c "))
	assert.Empty(t, SplitTags(""))
}

func TestTagList(t *testing.T) {
	l := NewTagList("b", "a", "b", " ", "c")
	assert.Equal(t, "b,a,c", l.String())
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains("a"))

	l.Add("d", "e", "f")
	l.Truncate(MaxTags)
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, l.Slice())
	assert.False(t, l.Contains("f"))

	// truncated tags can be added again
	l.Truncate(2)
	l.Add("c")
	assert.Equal(t, "b,a,c", l.String())
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, "a,b,c,d,e", CleanTags("a,b,a,c,d,e,f"))
	assert.Equal(t, "", CleanTags("nan"))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "2024-01-02T03:04:05Z", want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ok: true},
		{raw: "2024-01-02 03:04:05", want: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ok: true},
		{raw: "2024-01-02 03:04:05.250000+00:00", want: time.Date(2024, 1, 2, 3, 4, 5, 250000000, time.UTC), ok: true},
		{raw: "2024-01-02", want: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "yesterday", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}

	assert.Equal(t, "", FormatTimestamp(time.Time{}))
}
