// Package search builds the client-side search index and implements the one
// ranking rule shared with the generated browser script.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/sitegen/internal/content"
)

// Defaults.
const (
	DefaultExcerptLength = 300
	DefaultLimit         = 10
	MinQueryLength       = 2
)

// Entry is one searchable post.
type Entry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Slug        string   `json:"slug"`
	URL         string   `json:"url"`
	ReadingTime string   `json:"readingTime"`
	Difficulty  string   `json:"difficulty"`
	Date        string   `json:"date"`
	Content     string   `json:"content"`
}

// Build projects every non-draft record into an index entry, keeping record
// order. excerptLen <= 0 means DefaultExcerptLength.
func Build(records []*content.Record, excerptLen int) []Entry {
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLength
	}
	out := make([]Entry, 0, len(records))
	for _, r := range records {
		if r.Draft {
			continue
		}
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, Entry{
			Title:       r.Title,
			Description: r.Description,
			Category:    r.Category,
			Tags:        tags,
			Slug:        r.Slug,
			URL:         r.URL(),
			ReadingTime: r.ReadingTime,
			Difficulty:  r.Difficulty,
			Date:        r.DateText,
			Content:     Excerpt(r.Body, excerptLen),
		})
	}
	return out
}

// Hit is a matching entry with its rank.
type Hit struct {
	Entry
	Score int `json:"score"`
}

// Occurrences counts case-insensitive, non-overlapping matches of query in
// the searchable fields of e. The excerpt is not searched.
func Occurrences(e Entry, query string) int {
	q := strings.ToLower(query)
	n := strings.Count(strings.ToLower(e.Title), q) +
		strings.Count(strings.ToLower(e.Description), q) +
		strings.Count(strings.ToLower(e.Category), q) +
		strings.Count(strings.ToLower(e.Difficulty), q)
	for _, t := range e.Tags {
		n += strings.Count(strings.ToLower(t), q)
	}
	return n
}

// Search returns up to limit entries matching query, most occurrences first.
// Ties keep index order. Queries shorter than MinQueryLength runes after
// trimming match nothing.
func Search(index []Entry, query string, limit int) []Hit {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var hits []Hit
	for _, e := range index {
		if n := Occurrences(e, query); n > 0 {
			hits = append(hits, Hit{Entry: e, Score: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
