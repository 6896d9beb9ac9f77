package search

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// PlainText returns the readable text of a Markdown body: heading, paragraph
// and list text with markup removed and code blocks left out. Whitespace is
// collapsed to single spaces.
func PlainText(body string) string {
	src := []byte(body)
	doc := md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt is PlainText cut to at most n runes. n <= 0 means no limit.
func Excerpt(body string, n int) string {
	plain := PlainText(body)
	if n <= 0 {
		return plain
	}
	runes := []rune(plain)
	if len(runes) <= n {
		return plain
	}
	return strings.TrimSpace(string(runes[:n]))
}
