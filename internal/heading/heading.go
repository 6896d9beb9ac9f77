// Package heading derives headings and anchor IDs from a post body. The
// renderer and the table of contents both take their IDs from AnchorID so
// in-page links always resolve.
package heading

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/sitegen/internal/content"
)

// DefaultTOCMin is the heading count at which a table of contents is shown.
const DefaultTOCMin = 4

var (
	atxPattern     = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)
	anchorStrip    = regexp.MustCompile(`[^\w\s-]`)
	anchorCollapse = regexp.MustCompile(`\s+`)

	fenceLinePattern = regexp.MustCompile("^" + fenceLine + "$")

	// FenceBlockPattern matches a whole fenced block: group 1 is the info
	// tag, group 2 the code. Blocks pair up exactly as IsFence toggles.
	FenceBlockPattern = regexp.MustCompile("(?ms)^" + fenceLine + "\n(.*?)^[ \t]*```[^\\s`]*[ \t]*$")
)

// fenceLine is a whole line of three backticks and an optional info tag.
const fenceLine = "[ \t]*```([^\\s`]*)[ \t]*"

// ParseLine recognizes an ATX heading line.
func ParseLine(line string) (content.Heading, bool) {
	m := atxPattern.FindStringSubmatch(line)
	if m == nil {
		return content.Heading{}, false
	}
	text := strings.TrimSpace(m[2])
	if text == "" {
		return content.Heading{}, false
	}
	return content.Heading{Level: len(m[1]), Text: text, AnchorID: AnchorID(text)}, true
}

// IsFence reports whether line opens or closes a fenced code block.
func IsFence(line string) bool {
	return fenceLinePattern.MatchString(line)
}

// Extract returns the headings of body in document order. Lines inside
// fenced code blocks are not headings.
func Extract(body string) []content.Heading {
	var out []content.Heading
	inFence := false
	for _, line := range strings.Split(normalize(body), "\n") {
		if IsFence(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if h, ok := ParseLine(line); ok {
			out = append(out, h)
		}
	}
	return out
}

// AnchorID lowercases text, drops everything but word characters, whitespace
// and hyphens, then turns each whitespace run into a single hyphen.
func AnchorID(text string) string {
	id := strings.ToLower(text)
	id = anchorStrip.ReplaceAllString(id, "")
	return anchorCollapse.ReplaceAllString(id, "-")
}

// TOC renders the table of contents fragment. Nesting is expressed as a left
// margin of 20px per level below 1.
func TOC(headings []content.Heading) string {
	if len(headings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<nav class="table-of-contents"><h3>Table of Contents</h3><ul>`)
	for _, h := range headings {
		fmt.Fprintf(&b, `<li style="margin-left: %dpx"><a href="#%s" class="toc-link">%s</a></li>`,
			(h.Level-1)*20, h.AnchorID, h.Text)
	}
	b.WriteString(`</ul></nav>`)
	return b.String()
}

// ShowTOC reports whether a post has enough headings for a table of contents.
// A min of zero or less means DefaultTOCMin.
func ShowTOC(headings []content.Heading, min int) bool {
	if min <= 0 {
		min = DefaultTOCMin
	}
	return len(headings) >= min
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
