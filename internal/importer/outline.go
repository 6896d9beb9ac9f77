package importer

import (
	"fmt"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// outline builds a section tree from a stream of headings and paragraphs.
// A heading nests under the nearest open heading of a lower level.
type outline struct {
	root  *doctree.DocNode
	stack []openSection
	text  strings.Builder
}

type openSection struct {
	node  *doctree.DocNode
	level int
}

func newOutline(title string) *outline {
	root := &doctree.DocNode{Title: title}
	return &outline{root: root, stack: []openSection{{node: root, level: 0}}}
}

func (o *outline) heading(level int, title string) {
	o.flush()
	node := &doctree.DocNode{Title: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, node)
	o.stack = append(o.stack, openSection{node: node, level: level})
}

func (o *outline) paragraph(t string) {
	if t = strings.TrimSpace(t); t == "" {
		return
	}
	if o.text.Len() > 0 {
		o.text.WriteString("\n\n")
	}
	o.text.WriteString(t)
}

func (o *outline) flush() {
	t := strings.TrimSpace(o.text.String())
	if t != "" {
		top := o.stack[len(o.stack)-1].node
		if top.Text != "" {
			top.Text += "\n\n" + t
		} else {
			top.Text = t
		}
	}
	o.text.Reset()
}

// tree closes the outline. Text before the first heading becomes a leading
// untitled section.
func (o *outline) tree() *doctree.DocTree {
	o.flush()
	t := &doctree.DocTree{Title: o.root.Title}
	if o.root.Text != "" {
		t.Children = append(t.Children, &doctree.DocNode{Text: o.root.Text})
	}
	t.Children = append(t.Children, o.root.Children...)
	return t
}

// pageOutline makes a top-level "Page N" section for every page with text.
// N counts blank pages too.
func pageOutline(title string, pages []string) *doctree.DocTree {
	o := newOutline(title)
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		o.heading(1, fmt.Sprintf("Page %d", i+1))
		o.stack[len(o.stack)-1].node.Page = i + 1
		o.paragraph(text)
	}
	return o.tree()
}
