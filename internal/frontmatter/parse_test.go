package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sitegen/internal/content"
)

func TestParse_NoHeader(t *testing.T) {
	inputs := []string{
		"",
		"# Just a title\n\nBody text.\n",
		"---\nnever closed\n",
		"\n---\ntitle: late\n---\nbody",
		"text before\n---\ntitle: x\n---\n",
	}
	for _, in := range inputs {
		meta, body := Parse(in)
		assert.Empty(t, meta)
		assert.NotNil(t, meta)
		assert.Equal(t, in, body)
	}
}

func TestParse_Scalars(t *testing.T) {
	raw := "---\n" +
		"title: Deep Sleep on the ESP32\n" +
		"date: 2024-03-01\n" +
		"draft: FALSE\n" +
		"featured: true\n" +
		"seriesOrder: 2\n" +
		"ratio: 1.5e2\n" +
		"mask: 0xFF\n" +
		"parent: null\n" +
		"quoted: \"keep: quotes\"\n" +
		"flow: [a, b]\n" +
		"url: https://example.com/x\n" +
		"---\n" +
		"Body starts here.\n"

	meta, body := Parse(raw)
	assert.Equal(t, "Body starts here.\n", body)

	assert.Equal(t, content.String("Deep Sleep on the ESP32"), meta["title"])
	assert.Equal(t, content.String("2024-03-01"), meta["date"])
	assert.Equal(t, content.Bool(false), meta["draft"])
	assert.Equal(t, content.Bool(true), meta["featured"])
	assert.Equal(t, content.Number(2), meta["seriesOrder"])
	assert.Equal(t, content.Number(150), meta["ratio"])
	assert.Equal(t, content.Number(255), meta["mask"])
	assert.True(t, meta.Has("parent"))
	assert.True(t, meta["parent"].IsNull())
	assert.Equal(t, content.String(`"keep: quotes"`), meta["quoted"])
	assert.Equal(t, content.String("[a, b]"), meta["flow"])
	assert.Equal(t, content.String("https://example.com/x"), meta["url"])
}

func TestParse_BlockArray(t *testing.T) {
	raw := "---\ntitle: Post\ntags:\n  - go\n  - embedded\ncategory: esp32\n---\nbody"
	meta, body := Parse(raw)
	assert.Equal(t, "body", body)
	assert.Equal(t, []string{"go", "embedded"}, meta.Strings("tags"))
	assert.Equal(t, "esp32", meta.Str("category"))
}

func TestParse_ArrayAtKeyIndent(t *testing.T) {
	raw := "---\ntags:\n- one\n- two\ntitle: After\n---\n"
	meta, _ := Parse(raw)
	assert.Equal(t, []string{"one", "two"}, meta.Strings("tags"))
	assert.Equal(t, "After", meta.Str("title"))
}

func TestParse_NestedSection(t *testing.T) {
	raw := "---\n" +
		"author:\n" +
		"  name: Ada\n" +
		"  links:\n" +
		"    - https://a.example\n" +
		"    - https://b.example\n" +
		"  active: true\n" +
		"title: Top\n" +
		"---\n"

	meta, _ := Parse(raw)
	author, ok := meta["author"].Map()
	require.True(t, ok)
	assert.Equal(t, content.String("Ada"), author["name"])
	assert.Equal(t, content.List("https://a.example", "https://b.example"), author["links"])
	assert.Equal(t, content.Bool(true), author["active"])
	assert.Equal(t, "Top", meta.Str("title"))
	assert.False(t, author.Has("title"))
}

func TestParse_EmptySectionStaysMap(t *testing.T) {
	meta, _ := Parse("---\nextra:\ntitle: x\n---\n")
	assert.Equal(t, content.KindMap, meta["extra"].Kind())
	assert.Equal(t, "x", meta.Str("title"))
}

func TestParse_OrphanItemDropped(t *testing.T) {
	meta, _ := Parse("---\n- stray\ntitle: x\n---\n")
	assert.Equal(t, content.Metadata{"title": content.String("x")}, meta)
}

func TestParse_CommentsAndJunkIgnored(t *testing.T) {
	meta, _ := Parse("---\n# comment\n\nno colon here\ntitle: x\n---\n")
	assert.Equal(t, content.Metadata{"title": content.String("x")}, meta)
}

func TestParse_MalformedFallsBack(t *testing.T) {
	raw := "---\ntitle: ok\n: orphan value\n---\nbody"
	meta, body := Parse(raw)
	assert.Empty(t, meta)
	assert.Equal(t, raw, body)

	res := Read(raw)
	assert.True(t, res.Found)
	assert.True(t, errors.Is(res.Err, ErrMalformedHeader))
}

func TestParseHeader_InvalidUTF8(t *testing.T) {
	_, err := ParseHeader("title: \xff\xfe")
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestSplit(t *testing.T) {
	header, body, ok := Split("---\ntitle: x\n---\nline one\n\nline two")
	require.True(t, ok)
	assert.Equal(t, "title: x", header)
	assert.Equal(t, "line one\n\nline two", body)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		in   string
		want content.Value
	}{
		{"42", content.Number(42)},
		{"-3.5", content.Number(-3.5)},
		{".5", content.Number(0.5)},
		{"1e3", content.Number(1000)},
		{"0x10", content.Number(16)},
		{"True", content.Bool(true)},
		{"NULL", content.Null()},
		{"2024-01-01", content.String("2024-01-01")},
		{"12:30", content.String("12:30")},
		{"v1.2", content.String("v1.2")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, tt.want.Equal(Coerce(tt.in)), "got %v", Coerce(tt.in))
		})
	}
}
