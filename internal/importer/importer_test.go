package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/sitegen/internal/doctree"
)

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "b.MD", "c.csv", "d.htm", "e.html", "f.pdf", "g.docx", "h.markdown"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
	r, err := ForFile("scan.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pdf, ok := r.(*PDFReader); !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected PDF reader with fallback, got %#v", r)
	}

	_, err = ForFile("slides.pptx", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDetectCategory(t *testing.T) {
	cats := []string{"esp32", "llm", "vllm"}
	if c, ok := DetectCategory("notes/ESP32-dma-tricks.txt", cats); !ok || c != "esp32" {
		t.Errorf("expected esp32, got %q %v", c, ok)
	}
	if c, ok := DetectCategory("vllm-batching.docx", cats); !ok || c != "llm" {
		t.Errorf("expected first match llm, got %q %v", c, ok)
	}
	if _, ok := DetectCategory("gardening.txt", cats); ok {
		t.Error("expected no category")
	}
}

func TestCSVReader(t *testing.T) {
	var b strings.Builder
	b.WriteString("board,current\n")
	for i := 0; i < 25; i++ {
		b.WriteString("esp32,10|12 uA\n")
	}
	tree, err := (&CSVReader{}).Read(strings.NewReader(b.String()), "power.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "Rows 2-21" || tree.Children[1].Title != "Rows 22-26" {
		t.Errorf("unexpected titles %q, %q", tree.Children[0].Title, tree.Children[1].Title)
	}
	lines := strings.Split(tree.Children[1].Text, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d lines", len(lines))
	}
	if lines[0] != "| board | current |" || lines[1] != "| esp32 | 10&#124;12 uA |" {
		t.Errorf("unexpected table %q", lines[:2])
	}
}

func TestCSVReader_HeaderOnly(t *testing.T) {
	tree, err := (&CSVReader{}).Read(strings.NewReader("a,b\n"), "h.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "| a | b |" {
		t.Fatalf("unexpected children %+v", tree.Children)
	}
}

func TestHTMLReader(t *testing.T) {
	input := `<html><head><title>Scope Notes</title><style>p{}</style></head><body>
<nav>skip me</nav>
<p>Lead   paragraph.</p>
<h2>Setup</h2><p>Wire it.</p>
<ul><li>measure</li><li>ground</li></ul>
<h3>Detail</h3><pre>
ls -la
</pre>
<h2>Results</h2><p>Clean.</p>
<script>alert(1)</script>
</body></html>`
	tree, err := (&HTMLReader{}).Read(strings.NewReader(input), "scope.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Scope Notes" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected lead text + 2 sections, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Lead paragraph." {
		t.Errorf("unexpected lead %q", tree.Children[0].Text)
	}
	setup := tree.Children[1]
	if setup.Text != "Wire it.\n\n- measure\n\n- ground" {
		t.Errorf("unexpected setup text %q", setup.Text)
	}
	if len(setup.Children) != 1 || setup.Children[0].Text != "```\nls -la\n```" {
		t.Fatalf("unexpected detail %+v", setup.Children)
	}
	if strings.Contains(Markdown(tree), "alert") || strings.Contains(Markdown(tree), "skip me") {
		t.Error("script or nav text leaked into output")
	}
}

func TestPageOutline(t *testing.T) {
	tree := pageOutline("manual", []string{"one", "", "  \n", "three\n\nfour\n"})
	if tree.Title != "manual" || len(tree.Children) != 2 {
		t.Fatalf("expected 2 pages, got %+v", tree.Children)
	}
	first, last := tree.Children[0], tree.Children[1]
	if first.Title != "Page 1" || first.Page != 1 || first.Text != "one" {
		t.Errorf("unexpected first page %+v", first)
	}
	if last.Title != "Page 4" || last.Page != 4 || last.Text != "three\n\nfour" {
		t.Errorf("unexpected last page %+v", last)
	}
	if got := Markdown(tree); !strings.Contains(got, "## Page 4\n\nthree\n\nfour\n") {
		t.Errorf("unexpected markdown %q", got)
	}
}

func TestBlankPages(t *testing.T) {
	if !blank(nil) || !blank([]string{"", " \n\f"}) {
		t.Error("expected blank pages")
	}
	if blank([]string{"", "text"}) {
		t.Error("expected text to count")
	}
}

func TestPDFReader_NotAPDF(t *testing.T) {
	_, err := (&PDFReader{}).Read(strings.NewReader("plain text"), "notes.pdf")
	if err == nil || !strings.Contains(err.Error(), "extract pdf text") {
		t.Fatalf("expected extract error, got %v", err)
	}
}

func TestMarkdown(t *testing.T) {
	tree := &doctree.DocTree{
		Title: "Deep  Sleep",
		Children: []*doctree.DocNode{
			{Text: "Lead line.  \n\n\n\nSecond."},
			{Title: "Setup", Text: "Wire it.", Children: []*doctree.DocNode{
				{Title: "L3", Children: []*doctree.DocNode{
					{Title: "L4", Children: []*doctree.DocNode{
						{Title: "L5", Children: []*doctree.DocNode{
							{Title: "L6", Children: []*doctree.DocNode{
								{Title: "Too deep", Text: "bottom"},
							}},
						}},
					}},
				}},
			}},
		},
	}
	want := "# Deep Sleep\n\nLead line.\n\nSecond.\n\n## Setup\n\nWire it.\n\n### L3\n\n#### L4\n\n" +
		"##### L5\n\n###### L6\n\n###### Too deep\n\nbottom\n"
	if got := Markdown(tree); got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
	if got := Markdown(&doctree.DocTree{}); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
