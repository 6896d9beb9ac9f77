package importer

import (
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// MaxHeadingLevel caps section depth in emitted Markdown.
const MaxHeadingLevel = 6

// Markdown renders tree as a post body: the tree title as the level one
// heading, then each section one level deeper than its parent. Sections
// past level six stay at six.
func Markdown(tree *doctree.DocTree) string {
	var blocks []string
	if t := oneLine(tree.Title); t != "" {
		blocks = append(blocks, "# "+t)
	}
	var walk func(nodes []*doctree.DocNode, level int)
	walk = func(nodes []*doctree.DocNode, level int) {
		for _, n := range nodes {
			if t := oneLine(n.Title); t != "" {
				blocks = append(blocks, strings.Repeat("#", min(level, MaxHeadingLevel))+" "+t)
			}
			if t := strings.TrimSpace(n.Text); t != "" {
				blocks = append(blocks, normalizeText(t))
			}
			walk(n.Children, level+1)
		}
	}
	walk(tree.Children, 2)
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeText drops trailing spaces, CRs and runs of blank lines.
func normalizeText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
