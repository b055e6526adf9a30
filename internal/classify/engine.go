// Package classify derives tags and a lifecycle status for documents that
// were stored without them.
package classify

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/emrgen/doctrack/internal/model"
)

var digitRun = regexp.MustCompile(`\d+`)

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes the engine draw from r instead of seeding a new generator
// on every call. Tests use it to get reproducible draws.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// Engine generates tags and statuses. The zero value is not usable, call New.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// draw runs f with the engine's random source
func (e *Engine) draw(f func(r *rand.Rand)) {
	if e.rng == nil {
		f(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	f(e.rng)
}

// GenerateTags returns the serialized tags for a document. It never fails:
// without a category or a description the document is tagged unclassified.
func (e *Engine) GenerateTags(category, description string) string {
	if strings.TrimSpace(category) == "" || strings.TrimSpace(description) == "" {
		return model.UnclassifiedTag
	}

	c, known := model.ParseCategory(category)
	if !known {
		c = model.CategoryOther
	}
	lowered := strings.ToLower(description)

	tags := model.NewTagList()
	e.draw(func(r *rand.Rand) {
		tags.Add(sample(r, categoryTags[c], baseTagCount)...)

		for _, kw := range descriptionKeywords {
			if strings.Contains(lowered, kw.keyword) {
				tags.Add(sample(r, kw.related, relatedTagCount)...)
			}
		}
	})

	tags.Add(years(description)...)

	for _, kw := range categoryKeywords[c] {
		if strings.Contains(lowered, kw.keyword) {
			tags.Add(kw.related...)
		}
	}

	tags.Truncate(model.MaxTags)
	if tags.Len() == 0 {
		return model.UnclassifiedTag
	}

	return tags.String()
}

// AssignStatus draws a status from the category's weighted multiset.
func (e *Engine) AssignStatus(category string) model.Status {
	if strings.TrimSpace(category) == "" {
		return model.StatusActive
	}

	choices := fallbackStatuses
	if c, known := model.ParseCategory(category); known {
		choices = statusWeights[c]
	}

	var status model.Status
	e.draw(func(r *rand.Rand) {
		status = choices[r.IntN(len(choices))]
	})

	return status
}

// sample picks n distinct entries of pool without replacement
func sample(r *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}

	picked := make([]string, 0, n)
	for _, i := range r.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}

	return picked
}

// years returns the four digit years of the tagged range, in order of appearance
func years(description string) []string {
	var found []string
	for _, run := range digitRun.FindAllString(description, -1) {
		if len(run) != 4 {
			continue
		}
		year, err := strconv.Atoi(run)
		if err != nil || year < firstTaggedYear || year > lastTaggedYear {
			continue
		}
		found = append(found, run)
	}

	return found
}
