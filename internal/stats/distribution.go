// Package stats turns a document collection into chart ready tables.
// Aggregations never fail: empty input yields a result flagged NoData.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/emrgen/doctrack/internal/model"
)

const (
	// UndefinedLabel collects documents with a blank category or status.
	UndefinedLabel = "Undefined"
	// DefaultTopTags is the number of tags kept by TagFrequency by default.
	DefaultTopTags = 10

	noDocuments = "no documents to aggregate"
	noTags      = "no tags to aggregate"
)

// Bucket is one labeled count.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Caption renders the bucket as a chart label.
func (b Bucket) Caption() string {
	return fmt.Sprintf("%s (%d) - %.1f%%", b.Label, b.Count, b.Percent)
}

// Distribution is a list of buckets ordered by count, highest first.
type Distribution struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
	NoData  bool     `json:"no_data,omitempty"`
	Message string   `json:"message,omitempty"`
}

// CategoryDistribution counts documents per category.
func CategoryDistribution(docs []*model.Document) Distribution {
	return distribution(docs, func(doc *model.Document) string {
		return string(doc.Category)
	})
}

// StatusDistribution counts documents per status.
func StatusDistribution(docs []*model.Document) Distribution {
	return distribution(docs, func(doc *model.Document) string {
		return string(doc.Status)
	})
}

func distribution(docs []*model.Document, key func(*model.Document) string) Distribution {
	if len(docs) == 0 {
		return Distribution{Buckets: []Bucket{}, NoData: true, Message: noDocuments}
	}

	c := newCounter()
	for _, doc := range docs {
		label := strings.TrimSpace(key(doc))
		if label == "" {
			label = UndefinedLabel
		}
		c.add(label)
	}

	return c.distribution(len(docs))
}

// TagFrequency counts tag occurrences across docs, lowercased, and keeps the
// topN most frequent. Percentages are relative to the kept counts. A
// topN <= 0 keeps DefaultTopTags.
func TagFrequency(docs []*model.Document, topN int) Distribution {
	if topN <= 0 {
		topN = DefaultTopTags
	}

	c := newCounter()
	for _, doc := range docs {
		for _, tag := range model.SplitTags(doc.Tags) {
			c.add(strings.ToLower(tag))
		}
	}

	if len(c.order) == 0 {
		return Distribution{Buckets: []Bucket{}, NoData: true, Message: noTags}
	}

	buckets := c.sorted()
	if len(buckets) > topN {
		buckets = buckets[:topN]
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}

	return Distribution{Buckets: withPercent(buckets, total), Total: total}
}

// counter counts labels and remembers the order they were first seen in
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(label string) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

// sorted returns buckets by count desc, ties by first appearance
func (c *counter) sorted() []Bucket {
	buckets := make([]Bucket, 0, len(c.order))
	for _, label := range c.order {
		buckets = append(buckets, Bucket{Label: label, Count: c.counts[label]})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	return buckets
}

func (c *counter) distribution(total int) Distribution {
	return Distribution{Buckets: withPercent(c.sorted(), total), Total: total}
}

func withPercent(buckets []Bucket, total int) []Bucket {
	for i := range buckets {
		buckets[i].Percent = round1(float64(buckets[i].Count) * 100 / float64(total))
	}

	return buckets
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
