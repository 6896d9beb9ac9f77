// Package doctree is the format-neutral outline shared by importers.
package doctree

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page or first row (0 if N/A)
	Children []*DocNode // Subsections
}

// Sections counts every node in the tree.
func (t *DocTree) Sections() int {
	var count func([]*DocNode) int
	count = func(nodes []*DocNode) int {
		n := len(nodes)
		for _, c := range nodes {
			n += count(c.Children)
		}
		return n
	}
	return count(t.Children)
}
