package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sitegen/internal/content"
)

func TestLint_CleanMetadata(t *testing.T) {
	meta, _ := Parse("---\n" +
		"title: Post\n" +
		"date: 2024-01-02\n" +
		"tags:\n  - a\n  - b\n" +
		"difficulty: advanced\n" +
		"draft: false\n" +
		"seriesOrder: 1\n" +
		"customField: anything\n" +
		"---\nbody")
	assert.Empty(t, Lint(meta))
	assert.Empty(t, Lint(nil))
}

func TestLint_ReportsWrongShapes(t *testing.T) {
	meta := content.Metadata{
		"title":       content.Number(7),
		"difficulty":  content.String("impossible"),
		"draft":       content.String("maybe"),
		"seriesOrder": content.String("first"),
	}
	issues := Lint(meta)
	require.Len(t, issues, 4)

	var locs []string
	for _, is := range issues {
		locs = append(locs, is.Location)
		assert.NotEmpty(t, is.Message)
	}
	joined := strings.Join(locs, " ")
	for _, key := range []string{"title", "difficulty", "draft", "seriesOrder"} {
		assert.Contains(t, joined, key)
	}
}

func TestLint_DifficultyAnyCase(t *testing.T) {
	assert.Empty(t, Lint(content.Metadata{"difficulty": content.String("Expert")}))
}

func TestDivergences(t *testing.T) {
	raw := "---\n" +
		"title: \"Quoted\"\n" +
		"count: 3\n" +
		"tags: [a, b]\n" +
		"plain: words\n" +
		"---\nbody"

	divs := Divergences(raw)
	keys := make([]string, 0, len(divs))
	for _, d := range divs {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"tags", "title"}, keys)
	assert.Equal(t, `"\"Quoted\""`, divs[1].Restricted)
	assert.Equal(t, `"Quoted"`, divs[1].YAML)
}

func TestDivergences_BlockArraysAgree(t *testing.T) {
	raw := "---\ntitle: Post\ntags:\n  - a\n  - b\n---\nbody"
	assert.Empty(t, Divergences(raw))
	assert.Empty(t, Divergences("no header"))
}
