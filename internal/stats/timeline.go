package stats

import (
	"sort"

	"github.com/emrgen/doctrack/internal/model"
)

// MonthLayout formats the month of a timeline point.
const MonthLayout = "2006-01"

// MonthCount is the number of uploads in one calendar month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Timeline is the upload count per month, oldest first.
type Timeline struct {
	Points  []MonthCount `json:"points"`
	NoData  bool         `json:"no_data,omitempty"`
	Message string       `json:"message,omitempty"`
}

// UploadTimeline groups documents by the UTC calendar month of their upload.
// Documents without a timestamp are left out.
func UploadTimeline(docs []*model.Document) Timeline {
	counts := map[string]int{}
	for _, doc := range docs {
		if doc.UploadDate.IsZero() {
			continue
		}
		counts[doc.UploadDate.UTC().Format(MonthLayout)]++
	}

	if len(counts) == 0 {
		return Timeline{Points: []MonthCount{}, NoData: true, Message: "no dated documents"}
	}

	points := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		points = append(points, MonthCount{Month: month, Count: count})
	}

	// the layout sorts lexically in calendar order
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})

	return Timeline{Points: points}
}

// CrossCount is the number of documents with one category and status.
type CrossCount struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}

// CategoryStatus counts documents per category and status pair, ordered by
// category then status.
func CategoryStatus(docs []*model.Document) []CrossCount {
	type pair struct{ category, status string }

	counts := map[pair]int{}
	for _, doc := range docs {
		p := pair{category: string(doc.Category), status: string(doc.Status)}
		if p.category == "" {
			p.category = UndefinedLabel
		}
		if p.status == "" {
			p.status = UndefinedLabel
		}
		counts[p]++
	}

	out := make([]CrossCount, 0, len(counts))
	for p, count := range counts {
		out = append(out, CrossCount{Category: p.category, Status: p.status, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Status < out[j].Status
	})

	return out
}

// Summary bundles every aggregation of one collection.
type Summary struct {
	Documents      int          `json:"documents"`
	Categories     Distribution `json:"categories"`
	Statuses       Distribution `json:"statuses"`
	Tags           Distribution `json:"tags"`
	Timeline       Timeline     `json:"timeline"`
	CategoryStatus []CrossCount `json:"category_status"`
}

// Summarize computes every aggregation of docs.
func Summarize(docs []*model.Document, topTags int) Summary {
	return Summary{
		Documents:      len(docs),
		Categories:     CategoryDistribution(docs),
		Statuses:       StatusDistribution(docs),
		Tags:           TagFrequency(docs, topTags),
		Timeline:       UploadTimeline(docs),
		CategoryStatus: CategoryStatus(docs),
	}
}
