package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/sitegen/internal/doctree"
	"github.com/dgallion1/sitegen/internal/frontmatter"
)

// MarkdownReader re-outlines Markdown from another tool. A leading header
// block is dropped; its title, when present, names the tree.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	meta, body := frontmatter.Parse(string(raw))
	title := baseTitle(filename)
	if t := meta.Str("title"); t != "" {
		title = t
	}

	src := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	o := newOutline(title)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			o.heading(node.Level, extractText(node, src))
		case *ast.FencedCodeBlock:
			o.paragraph(fence(string(node.Language(src)), node, src))
		case *ast.CodeBlock:
			o.paragraph(fence("", node, src))
		default:
			o.paragraph(extractText(n, src))
		}
	}
	return o.tree(), nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		s := extractText(c, src)
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteString("\n")
		}
		if _, ok := c.(*ast.ListItem); ok {
			s = "- " + s
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}

// fence re-emits a code block as a fenced block.
func fence(lang string, n ast.Node, src []byte) string {
	var buf strings.Builder
	buf.WriteString("```" + lang + "\n")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	code := strings.TrimRight(buf.String(), "\n")
	return code + "\n```"
}
