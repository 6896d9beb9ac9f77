package importer

import (
	"strings"
	"testing"
)

func TestMarkdownReader_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownReader{}
	tree, err := p.Read(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}
	if h1.Text != "Intro text." {
		t.Errorf("expected h1 text %q, got %q", "Intro text.", h1.Text)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA := h1.Children[0]
	if secA.Title != "Section A" {
		t.Errorf("expected %q, got %q", "Section A", secA.Title)
	}
	if len(secA.Children) != 1 || secA.Children[0].Title != "Subsection A1" {
		t.Fatalf("expected Subsection A1 under Section A, got %+v", secA.Children)
	}
	if h1.Children[1].Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", h1.Children[1].Title)
	}
}

func TestMarkdownReader_HeaderTitle(t *testing.T) {
	input := "---\ntitle: From Header\ntags:\n  - x\n---\nPlain body.\n"
	tree, err := (&MarkdownReader{}).Read(strings.NewReader(input), "old.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "From Header" {
		t.Errorf("expected title %q, got %q", "From Header", tree.Title)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "Plain body." {
		t.Fatalf("expected header dropped from body, got %+v", tree.Children)
	}
}

func TestMarkdownReader_CodeBlocksAndLists(t *testing.T) {
	input := "# API Reference\n\n## Endpoints\n\nList of endpoints:\n\n```http\nGET /api/users\nPOST /api/users\n```\n\n- one\n- *two*\n\nMore text after code.\n"

	tree, err := (&MarkdownReader{}).Read(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 || len(tree.Children[0].Children) != 1 {
		t.Fatalf("expected API Reference > Endpoints, got %+v", tree.Children)
	}

	endpoints := tree.Children[0].Children[0]
	want := "List of endpoints:\n\n```http\nGET /api/users\nPOST /api/users\n```\n\n- one\n- two\n\nMore text after code."
	if endpoints.Text != want {
		t.Errorf("expected text\n%q\ngot\n%q", want, endpoints.Text)
	}
}

func TestMarkdownReader_NoHeadings(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here."
	tree, err := (&MarkdownReader{}).Read(strings.NewReader(input), "notes.markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Just some plain text.\n\nAnother paragraph here." {
		t.Errorf("unexpected text %q", tree.Children[0].Text)
	}
}
