// Package metrics estimates word count, reading time and difficulty of a
// post body. Every function is deterministic.
package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

// WordsPerMinute is the assumed reading speed.
const WordsPerMinute = 200

// Difficulty labels.
const (
	Beginner     = "Beginner"
	Intermediate = "Intermediate"
	Advanced     = "Advanced"
)

// Terms is the fixed technical vocabulary counted by Difficulty.
var Terms = []string{
	"algorithm", "optimization", "performance", "architecture", "implementation",
	"benchmark", "analysis", "framework", "configuration", "specification",
	"cache", "memory", "bandwidth", "throughput", "parallel",
	"concurrent", "synchronous", "asynchronous",
}

var (
	termPattern     = regexp.MustCompile(`(?i)\b(` + strings.Join(Terms, "|") + `)\b`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// Estimate bundles the metrics of one body.
type Estimate struct {
	WordCount      int     `json:"wordCount"`
	SentenceCount  int     `json:"sentenceCount"`
	ReadingMinutes int     `json:"readingMinutes"`
	ReadingTime    string  `json:"readingTime"`
	AvgSentenceLen float64 `json:"avgSentenceLength"`
	TermDensity    float64 `json:"termDensity"`
	Difficulty     string  `json:"difficulty"`
}

// WordCount counts whitespace-separated tokens.
func WordCount(body string) int {
	return len(strings.Fields(body))
}

// SentenceCount splits on runs of terminal punctuation and counts the
// non-blank pieces.
func SentenceCount(body string) int {
	n := 0
	for _, s := range sentencePattern.Split(body, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// ReadingMinutes rounds words up to whole minutes, never less than one.
func ReadingMinutes(words int) int {
	m := (words + WordsPerMinute - 1) / WordsPerMinute
	if m < 1 {
		return 1
	}
	return m
}

// ReadingTime formats minutes as shown on post cards.
func ReadingTime(minutes int) string {
	if minutes == 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

// TermDensity is the number of dictionary terms per 100 words.
func TermDensity(body string) float64 {
	words := WordCount(body)
	if words == 0 {
		return 0
	}
	hits := len(termPattern.FindAllStringIndex(body, -1))
	return float64(hits) / (float64(words) / 100)
}

// AvgSentenceLength is words per sentence, with at least one sentence.
func AvgSentenceLength(body string) float64 {
	return float64(WordCount(body)) / float64(max(1, SentenceCount(body)))
}

// Difficulty labels a body from sentence length and technical density.
func Difficulty(body string) string {
	return label(AvgSentenceLength(body), TermDensity(body))
}

func label(avg, density float64) string {
	switch {
	case avg > 15 && density > 2:
		return Advanced
	case avg > 12 || density > 1:
		return Intermediate
	}
	return Beginner
}

// Compute returns every metric for body.
func Compute(body string) Estimate {
	words := WordCount(body)
	mins := ReadingMinutes(words)
	avg := AvgSentenceLength(body)
	density := TermDensity(body)
	return Estimate{
		WordCount:      words,
		SentenceCount:  SentenceCount(body),
		ReadingMinutes: mins,
		ReadingTime:    ReadingTime(mins),
		AvgSentenceLen: avg,
		TermDensity:    density,
		Difficulty:     label(avg, density),
	}
}
