// Package stats summarizes a built corpus: distribution of categories,
// difficulties and tags, word-count spread and posting cadence.
package stats

import (
	"sort"
	"time"

	"github.com/dgallion1/sitegen/internal/content"
)

// TopTagLimit caps Analysis.TopTags.
const TopTagLimit = 10

// MonthlyTarget is the posting cadence Gaps checks against.
const MonthlyTarget = 2

const monthLayout = "2006-01"

// Summary is an aggregate of word counts.
type Summary struct {
	Count int     `json:"count"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
	Avg   float64 `json:"avg"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Analysis is a point-in-time summary of a corpus.
type Analysis struct {
	Posts        int            `json:"posts"`
	Drafts       int            `json:"drafts"`
	Categories   map[string]int `json:"categories"`
	Difficulties map[string]int `json:"difficulties"`
	TopTags      []TagCount     `json:"topTags"`
	Words        Summary        `json:"words"`
	Months       map[string]int `json:"months"` // YYYY-MM, dated posts only
}

// Analyze summarizes records. Drafts are counted but otherwise ignored.
func Analyze(records []*content.Record) Analysis {
	a := Analysis{
		Categories:   map[string]int{},
		Difficulties: map[string]int{},
		TopTags:      []TagCount{},
		Months:       map[string]int{},
	}
	tags := map[string]int{}
	var words []int
	for _, r := range records {
		if r.Draft {
			a.Drafts++
			continue
		}
		a.Posts++
		a.Categories[r.Category]++
		a.Difficulties[r.Difficulty]++
		for _, t := range r.Tags {
			tags[t]++
		}
		words = append(words, r.WordCount)
		if !r.Date.IsZero() {
			a.Months[r.Date.Format(monthLayout)]++
		}
	}

	for t, n := range tags {
		a.TopTags = append(a.TopTags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(a.TopTags, func(i, j int) bool {
		if a.TopTags[i].Count != a.TopTags[j].Count {
			return a.TopTags[i].Count > a.TopTags[j].Count
		}
		return a.TopTags[i].Tag < a.TopTags[j].Tag
	})
	if len(a.TopTags) > TopTagLimit {
		a.TopTags = a.TopTags[:TopTagLimit]
	}

	a.Words = summarize(words)
	return a
}

func summarize(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	return Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Avg:   float64(sum) / float64(len(sorted)),
		P50:   percentile(sorted, 50),
		P95:   percentile(sorted, 95),
	}
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sortedValues []int, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}

// MonthGap is a month with fewer posts than the target.
type MonthGap struct {
	Month    string `json:"month"`
	Existing int    `json:"existing"`
	Needed   int    `json:"needed"`
}

// Gaps walks every month from the earliest dated post through until and
// reports those below target. target <= 0 uses MonthlyTarget.
func (a Analysis) Gaps(target int, until time.Time) []MonthGap {
	if target <= 0 {
		target = MonthlyTarget
	}
	if len(a.Months) == 0 {
		return nil
	}
	first := ""
	for m := range a.Months {
		if first == "" || m < first {
			first = m
		}
	}
	start, err := time.Parse(monthLayout, first)
	if err != nil {
		return nil
	}
	end := time.Date(until.Year(), until.Month(), 1, 0, 0, 0, 0, time.UTC)

	var gaps []MonthGap
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		if n := a.Months[key]; n < target {
			gaps = append(gaps, MonthGap{Month: key, Existing: n, Needed: target - n})
		}
	}
	return gaps
}
