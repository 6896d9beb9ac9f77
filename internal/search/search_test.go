package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sitegen/internal/content"
)

func TestPlainText(t *testing.T) {
	body := "# Deep Sleep\n\nThe **ESP32** draws `12uA` in [deep sleep](http://x).\n\n" +
		"```c\nesp_deep_sleep_start();\n```\n\n- one\n- two\n\n<div>raw html</div>\n"
	got := PlainText(body)
	assert.Equal(t, "Deep Sleep The ESP32 draws 12uA in deep sleep. one two", got)
	assert.NotContains(t, got, "esp_deep_sleep_start")
}

func TestExcerpt(t *testing.T) {
	body := strings.Repeat("é", 10) + " tail"
	assert.Equal(t, strings.Repeat("é", 5), Excerpt(body, 5))
	assert.Equal(t, body, Excerpt(body, 0))
	assert.Equal(t, "short", Excerpt("short", 300))
}

func sampleIndex() []Entry {
	return []Entry{
		{Title: "ESP32 deep sleep", Description: "Power notes", Category: "esp32", Tags: []string{"power"}, Difficulty: "Beginner"},
		{Title: "Power, power, power", Description: "All about power", Category: "misc", Difficulty: "Advanced"},
		{Title: "Unrelated", Description: "Nothing here", Category: "misc", Difficulty: "Beginner"},
		{Title: "Tagged", Description: "x", Category: "esp32", Tags: []string{"Power", "low-power"}, Difficulty: "Expert"},
	}
}

func titles(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Title
	}
	return out
}

func TestSearch_RanksByOccurrences(t *testing.T) {
	hits := Search(sampleIndex(), "  POWER ", 0)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"Power, power, power", "ESP32 deep sleep", "Tagged"}, titles(hits))
	assert.Equal(t, []int{4, 2, 2}, []int{hits[0].Score, hits[1].Score, hits[2].Score})
}

func TestSearch_ShortQuery(t *testing.T) {
	assert.Nil(t, Search(sampleIndex(), "p", 10))
	assert.Nil(t, Search(sampleIndex(), "   ", 10))
	assert.NotEmpty(t, Search(sampleIndex(), "es", 10))
}

func TestSearch_Limit(t *testing.T) {
	var index []Entry
	for i := 0; i < 15; i++ {
		index = append(index, Entry{Title: "match", Difficulty: "Beginner"})
	}
	assert.Len(t, Search(index, "match", 0), DefaultLimit)
	assert.Len(t, Search(index, "match", 3), 3)
}

func TestBuild(t *testing.T) {
	records := []*content.Record{
		{Title: "A", Category: "esp32", Slug: "a", Body: "Hello **world**", DateText: "2024-01-02", ReadingTime: "1 min read", Difficulty: "Beginner"},
		{Title: "Draft", Category: "esp32", Slug: "d", Draft: true},
	}
	index := Build(records, 0)
	require.Len(t, index, 1)
	e := index[0]
	assert.Equal(t, "esp32/a.html", e.URL)
	assert.Equal(t, "Hello world", e.Content)
	assert.Equal(t, "2024-01-02", e.Date)
	assert.NotNil(t, e.Tags)
}

func TestScript(t *testing.T) {
	js, err := Script([]Entry{{Title: "Hello", Tags: []string{}}}, 0)
	require.NoError(t, err)
	s := string(js)
	assert.Contains(t, s, "const searchIndex = [")
	assert.Contains(t, s, `"title": "Hello"`)
	assert.Contains(t, s, "Array.from(q).length < 2")
	assert.Contains(t, s, "hits.slice(0, 10)")
	assert.Contains(t, s, "function highlightSearchTerm")

	empty, err := Script(nil, 5)
	require.NoError(t, err)
	assert.Contains(t, string(empty), "const searchIndex = [];")
}
