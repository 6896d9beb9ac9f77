// Package related suggests other posts that share a category or tags.
package related

import (
	"sort"

	"github.com/dgallion1/sitegen/internal/content"
)

// DefaultLimit is the number of suggestions when no limit is given.
const DefaultLimit = 3

// Score weights.
const (
	CategoryWeight = 3
	TagWeight      = 2
)

// Edge is a scored link between two records, identified by key.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Score  int    `json:"score"`
}

// Score rates how related b is to a: CategoryWeight for a shared category
// plus TagWeight per distinct tag both carry.
func Score(a, b *content.Record) int {
	score := 0
	if a.Category == b.Category {
		score += CategoryWeight
	}
	tags := make(map[string]struct{}, len(a.Tags))
	for _, t := range a.Tags {
		tags[t] = struct{}{}
	}
	for _, t := range b.Tags {
		if _, ok := tags[t]; ok {
			score += TagWeight
			delete(tags, t)
		}
	}
	return score
}

type candidate struct {
	rec   *content.Record
	score int
}

// Find ranks corpus against target. The target itself and records scoring
// zero are left out. Ties keep corpus order, so results are only as stable as
// the order the caller passes in.
func Find(target *content.Record, corpus []*content.Record, limit int) []*content.Record {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranked := rank(target, corpus)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]*content.Record, len(ranked))
	for i, c := range ranked {
		out[i] = c.rec
	}
	return out
}

func rank(target *content.Record, corpus []*content.Record) []candidate {
	var cands []candidate
	for _, r := range corpus {
		if r.Key == target.Key {
			continue
		}
		if s := Score(target, r); s > 0 {
			cands = append(cands, candidate{rec: r, score: s})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	return cands
}

// Edges lists the top related links of every record, in corpus order.
func Edges(corpus []*content.Record, limit int) []Edge {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var edges []Edge
	for _, src := range corpus {
		ranked := rank(src, corpus)
		if len(ranked) > limit {
			ranked = ranked[:limit]
		}
		for _, c := range ranked {
			edges = append(edges, Edge{Source: src.Key, Target: c.rec.Key, Score: c.score})
		}
	}
	return edges
}
