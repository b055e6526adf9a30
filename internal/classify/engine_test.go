package classify

import (
	"math/rand/v2"
	"testing"

	"github.com/emrgen/doctrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *Engine {
	return New(WithRand(rand.New(rand.NewPCG(seed, seed+1))))
}

func TestEngine_GenerateTags_Unclassified(t *testing.T) {
	e := New()

	tests := []struct {
		name        string
		category    string
		description string
	}{
		{name: "empty both"},
		{name: "empty category", description: "annual report"},
		{name: "empty description", category: "Project"},
		{name: "blank description", category: "Project", description: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, model.UnclassifiedTag, e.GenerateTags(tt.category, tt.description))
		})
	}
}

func TestEngine_GenerateTags_Properties(t *testing.T) {
	e := New()
	descriptions := []string{
		"quarterly financial review",
		"client innovation strategy 2021",
		"maintenance of finances",
		"recruitment and training evaluation 2024",
		"misc notes",
	}
	categories := []string{"Administrative", "Project", "Personnel", "Other", "Legal"}

	for i := 0; i < 50; i++ {
		for _, category := range categories {
			for _, description := range descriptions {
				tags := model.SplitTags(e.GenerateTags(category, description))
				require.NotEmpty(t, tags)
				assert.LessOrEqual(t, len(tags), model.MaxTags)

				seen := make(map[string]struct{})
				for _, tag := range tags {
					_, dup := seen[tag]
					assert.False(t, dup, "duplicate tag %q", tag)
					seen[tag] = struct{}{}
				}
			}
		}
	}
}

func TestEngine_GenerateTags_BaseVocabulary(t *testing.T) {
	e := seeded(42)

	for _, category := range model.Categories {
		tags := model.SplitTags(e.GenerateTags(string(category), "nothing special"))
		require.Len(t, tags, baseTagCount)
		for _, tag := range tags {
			assert.Contains(t, categoryTags[category], tag)
		}
	}

	// an unknown category draws from the Other vocabulary
	for _, tag := range model.SplitTags(e.GenerateTags("Legal", "nothing special")) {
		assert.Contains(t, categoryTags[model.CategoryOther], tag)
	}
}

func TestEngine_GenerateTags_Year(t *testing.T) {
	e := New()

	for i := 0; i < 20; i++ {
		tags := model.SplitTags(e.GenerateTags("Project", "plan 2023"))
		assert.Contains(t, tags, "2023")
		assert.Len(t, tags, baseTagCount+1)
	}

	tags := model.SplitTags(e.GenerateTags("Other", "archive from 1999 and 12345"))
	assert.NotContains(t, tags, "1999")
	assert.NotContains(t, tags, "2345")
	assert.NotContains(t, tags, "1234")
}

func TestEngine_GenerateTags_Keywords(t *testing.T) {
	e := seeded(7)

	tags := model.SplitTags(e.GenerateTags("Other", "Financial summary"))
	require.Len(t, tags, baseTagCount+relatedTagCount)
	for _, tag := range tags[baseTagCount:] {
		assert.Contains(t, []string{"finances", "accounting", "budget"}, tag)
	}
}

func TestEngine_GenerateTags_CategoryAugmentation(t *testing.T) {
	e := New()

	for i := 0; i < 20; i++ {
		tags := model.SplitTags(e.GenerateTags("Administrative", "finances"))
		assert.Contains(t, tags, "accounting")
		assert.Contains(t, tags, "budget")
	}

	for i := 0; i < 20; i++ {
		tags := model.SplitTags(e.GenerateTags("Personnel", "recruitment drive"))
		// the base draw may already hold skills, the truncation never drops CV
		assert.Contains(t, tags, "CV")
	}
}

func TestEngine_GenerateTags_Reproducible(t *testing.T) {
	a := seeded(99).GenerateTags("Project", "client innovation 2022")
	b := seeded(99).GenerateTags("Project", "client innovation 2022")
	assert.Equal(t, a, b)
}

func TestEngine_AssignStatus(t *testing.T) {
	e := New()

	for i := 0; i < 200; i++ {
		for _, category := range []string{"Administrative", "Project", "Personnel", "Other", "Legal"} {
			assert.True(t, e.AssignStatus(category).Valid())
		}
	}

	assert.Equal(t, model.StatusActive, e.AssignStatus(""))
}

func TestEngine_AssignStatus_Distribution(t *testing.T) {
	e := seeded(1)

	counts := make(map[model.Status]int)
	for i := 0; i < 4000; i++ {
		counts[e.AssignStatus("Personnel")]++
	}

	// Personnel archives half of its documents
	assert.InDelta(t, 2000, counts[model.StatusArchived], 250)
	assert.InDelta(t, 1000, counts[model.StatusActive], 250)
	assert.InDelta(t, 1000, counts[model.StatusDeleted], 250)
}
