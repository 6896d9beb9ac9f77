package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sitegen/internal/heading"
)

func TestRender_Example(t *testing.T) {
	out := New().Render("# Title\n\nSome **bold** text with `code`.\n")
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, `<strong>bold</strong>`)
	assert.Contains(t, out, `<code>code</code>`)
	assert.Equal(t, "<p><h1 id=\"title\">Title</h1></p>\n<p>Some <strong>bold</strong> text with <code>code</code>.</p>", out)
}

func TestRender_AnchorsMatchTOC(t *testing.T) {
	body := "# Getting Started\n\n## What's New?\n\n```md\n# inside fence\n```\n\n### C++ & Go\n"
	out := New().Render(body)
	hs := heading.Extract(body)
	require.Len(t, hs, 3)

	missing, err := heading.MissingAnchors(out, hs)
	require.NoError(t, err)
	assert.Empty(t, missing)

	toc := heading.TOC(hs)
	for _, h := range hs {
		assert.Contains(t, toc, `href="#`+h.AnchorID+`"`)
		assert.Contains(t, out, `id="`+h.AnchorID+`"`)
	}
	assert.NotContains(t, out, "<h1 id=\"inside-fence\"")
}

func TestRender_FenceRuleMatchesHeadings(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"tag with symbols", "```c++\nint x;\n```\n\n# After\n\n```go\nfmt.Println()\n```\n", `class="language-c++">int x;`},
		{"dashed tag", "```shell-session\n$ make\n```\n\n## After Build\n", `class="language-shell-session">$ make`},
		{"backticks mid line", "Inline ```\n# H1\n```\n\n# H2\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := New().Render(tt.body)
			hs := heading.Extract(tt.body)
			require.NotEmpty(t, hs)

			missing, err := heading.MissingAnchors(out, hs)
			require.NoError(t, err)
			assert.Empty(t, missing)
			if tt.code != "" {
				assert.Contains(t, out, tt.code)
			}
		})
	}

	out := New().Render("Inline ```\n# H1\n```\n\n# H2\n")
	assert.Contains(t, out, `<h1 id="h1">H1</h1>`)
	assert.NotContains(t, out, `class="code-block"`)
}

func TestRender_StageOrder(t *testing.T) {
	var names []string
	for _, s := range New().Stages() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"normalize", "headings", "code-blocks", "inline", "tables",
		"blocks", "lists", "paragraphs", "restore",
	}, names)
}

func TestCodeBlocks(t *testing.T) {
	stage := func(s string) string { return Restore(CodeBlocks(nil)(s)) }

	t.Run("terminal wrapper", func(t *testing.T) {
		out := stage("```bash\n  echo 'hi' && ls\n```")
		assert.Contains(t, out, `<div class="terminal-dot" style="background: #ff5f56;"></div>`)
		assert.Contains(t, out, `<div class="terminal-content">`)
		assert.Contains(t, out, `<pre>echo &#039;hi&#039; &amp;&amp; ls</pre>`)
	})

	t.Run("language tagged", func(t *testing.T) {
		out := stage("```go\nx := <-ch\n```")
		assert.Equal(t, `<div class="code-block"><pre><code class="language-go">x := &lt;-ch</code></pre></div>`, out)
	})

	t.Run("no language", func(t *testing.T) {
		out := stage("```\nplain\n```")
		assert.Contains(t, out, `class="language-text"`)
	})

	t.Run("placeholder hides code from later stages", func(t *testing.T) {
		protected := CodeBlocks(nil)("```\n**not bold** and `tick`\n\n- not a list\n```")
		assert.NotContains(t, protected, "**")
		assert.Equal(t, "<p>"+protected+"</p>", Paragraphs(Lists(Inline(protected))))
	})
}

func TestRender_CodeUntouched(t *testing.T) {
	out := New().Render("Intro\n\n```python\n# comment\nx = a * b * c\n\n\n| not | table |\n```\n")
	assert.Contains(t, out, "# comment\nx = a * b * c\n\n\n| not | table |")
	assert.NotContains(t, out, "<h1")
	assert.NotContains(t, out, "<em>")
	assert.NotContains(t, out, "<tr>")
}

func TestHighlighter(t *testing.T) {
	h := NewHighlighter("")
	out := New(WithHighlighter(h)).Render("```go\nfunc main() {}\n```")
	assert.Contains(t, out, `<div class="code-block">`)
	assert.Contains(t, out, `class="chroma"`)

	fallback := New(WithHighlighter(h)).Render("```nosuchlang\nx\n```")
	assert.Contains(t, fallback, `class="language-nosuchlang"`)

	css, err := h.CSS()
	require.NoError(t, err)
	assert.Contains(t, css, ".chroma")

	assert.NotNil(t, NewHighlighter("no-such-style").style)
}

func TestInline(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"bold before italic", "**a** and *b*", "<strong>a</strong> and <em>b</em>"},
		{"two bold spans", "**a** x **b**", "<strong>a</strong> x <strong>b</strong>"},
		{"spaced asterisks are not italic", "2 * 3 * 4", "2 * 3 * 4"},
		{"bullet marker untouched", "* item", "* item"},
		{"link", "[Go](https://go.dev)", `<a href="https://go.dev" target="_blank" rel="noopener">Go</a>`},
		{"image", "![logo](img/logo.png)", `<img src="img/logo.png" alt="logo">`},
		{"code span escaped", "`<b>`", "<code>&lt;b&gt;</code>"},
		{"code span shields emphasis", "`**x**`", "<code>**x**</code>"},
		{"code span stays on one line", "a `b\nc` d", "a `b\nc` d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Restore(Inline(tt.in)))
		})
	}
}

func TestTables(t *testing.T) {
	out := Tables("before\n| a | b |\n|---|---|\n| 1 | 2 |\nafter")
	assert.Equal(t, "before\n<table>\n<tr><td>a</td><td>b</td></tr>\n<tr><td>---</td><td>---</td></tr>\n<tr><td>1</td><td>2</td></tr>\n</table>\nafter", out)
}

func TestBlocks(t *testing.T) {
	assert.Equal(t, "<blockquote>quoted text</blockquote>\n<hr>\n--- not a rule", Blocks(">  quoted text\n---\n--- not a rule"))
}

func TestLists(t *testing.T) {
	t.Run("greedy merge across blank lines", func(t *testing.T) {
		out := Lists("- a\n\n* b\n\n1. one\n2. two")
		assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n\n<ol>\n<li>one</li>\n<li>two</li>\n</ol>", out)
	})
	t.Run("run ends at prose", func(t *testing.T) {
		out := Lists("- a\ntext\n- b")
		assert.Equal(t, "<ul>\n<li>a</li>\n</ul>\ntext\n<ul>\n<li>b</li>\n</ul>", out)
	})
	t.Run("trailing blanks kept", func(t *testing.T) {
		assert.Equal(t, "<ul>\n<li>a</li>\n</ul>\n\n", Lists("- a\n\n"))
	})
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, "<p>a</p>\n<p>b\nc</p>\n<p>d</p>", Paragraphs("\n\na\n\nb\nc\n \t\nd\n"))
	assert.Equal(t, "", Paragraphs("\n\n"))
}

func TestNormalizeAndRestore(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Normalize("a\r\nb\rc"))
	assert.Equal(t, "xy", Normalize("x\uE000y\uE001"))

	raw := "<pre>x & y\n\ttabbed ü</pre>"
	enc := protect(raw)
	assert.NotContains(t, enc, "\n")
	assert.Equal(t, "pre "+raw+" post", Restore("pre "+enc+" post"))
}

func TestRender_Deterministic(t *testing.T) {
	body := strings.Repeat("Some *text* with [a link](x).\n\n", 5)
	r := New()
	assert.Equal(t, r.Render(body), r.Render(body))
}
