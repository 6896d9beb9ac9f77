package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/sitegen/internal/heading"
)

var (
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*\s][^*\n]*?)\*`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	quotePattern      = regexp.MustCompile(`^>\s+(.+)$`)
	bulletPattern     = regexp.MustCompile(`^[*-] (.+)$`)
	orderedPattern    = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	paragraphSplit    = regexp.MustCompile(`\n[ \t]*\n`)
)

// Normalize converts line endings to \n and drops the private-use marks that
// delimit protected spans.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == openMark || r == closeMark {
			return -1
		}
		return r
	}, s)
}

// Headings turns ATX heading lines outside code fences into heading elements
// carrying the shared anchor ID.
func Headings(s string) string {
	lines := strings.Split(s, "\n")
	inFence := false
	for i, line := range lines {
		if heading.IsFence(line) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if h, ok := heading.ParseLine(line); ok {
			lines[i] = fmt.Sprintf(`<h%d id="%s">%s</h%d>`, h.Level, h.AnchorID, h.Text, h.Level)
		}
	}
	return strings.Join(lines, "\n")
}

const terminalTemplate = `
<div class="terminal">
  <div class="terminal-header">
    <div class="terminal-dot" style="background: #ff5f56;"></div>
    <div class="terminal-dot" style="background: #ffbd2e;"></div>
    <div class="terminal-dot" style="background: #27c93f;"></div>
  </div>
  <div class="terminal-content">
    <pre>%s</pre>
  </div>
</div>`

// CodeBlocks returns the fenced code stage. terminal and bash blocks get the
// terminal window wrapper; everything else becomes a language-tagged code
// block, highlighted when h knows the language.
func CodeBlocks(h *Highlighter) func(string) string {
	return func(s string) string {
		return heading.FenceBlockPattern.ReplaceAllStringFunc(s, func(m string) string {
			sub := heading.FenceBlockPattern.FindStringSubmatch(m)
			lang, code := sub[1], strings.TrimSpace(sub[2])
			return protect(codeBlock(h, lang, code))
		})
	}
}

func codeBlock(h *Highlighter, lang, code string) string {
	if lang == "terminal" || lang == "bash" {
		return fmt.Sprintf(terminalTemplate, EscapeHTML(code))
	}
	if h != nil {
		if out, ok := h.Highlight(lang, code); ok {
			return `<div class="code-block">` + out + `</div>`
		}
	}
	if lang == "" {
		lang = "text"
	}
	return fmt.Sprintf(`<div class="code-block"><pre><code class="language-%s">%s</code></pre></div>`,
		EscapeHTML(lang), EscapeHTML(code))
}

// Inline handles code spans, images, bold, italic and links, in that order.
func Inline(s string) string {
	s = inlineCodePattern.ReplaceAllStringFunc(s, func(m string) string {
		return protect("<code>" + EscapeHTML(m[1:len(m)-1]) + "</code>")
	})
	s = imagePattern.ReplaceAllString(s, `<img src="$2" alt="$1">`)
	s = boldPattern.ReplaceAllString(s, `<strong>$1</strong>`)
	s = italicPattern.ReplaceAllString(s, `<em>$1</em>`)
	return linkPattern.ReplaceAllString(s, `<a href="$2" target="_blank" rel="noopener">$1</a>`)
}

func isTableRow(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) >= 2 && strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

func tableRow(line string) string {
	t := strings.TrimSpace(line)
	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range strings.Split(t[1:len(t)-1], "|") {
		b.WriteString("<td>" + strings.TrimSpace(cell) + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// Tables turns every pipe-delimited line into a row and wraps each run of
// adjacent rows in a table. Separator rows are not special.
func Tables(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines)+2)
	for i := 0; i < len(lines); {
		if !isTableRow(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, "<table>")
		for ; i < len(lines) && isTableRow(lines[i]); i++ {
			out = append(out, tableRow(lines[i]))
		}
		out = append(out, "</table>")
	}
	return strings.Join(out, "\n")
}

// Blocks converts blockquote lines and horizontal rules.
func Blocks(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "---" {
			lines[i] = "<hr>"
			continue
		}
		if m := quotePattern.FindStringSubmatch(line); m != nil {
			lines[i] = "<blockquote>" + m[1] + "</blockquote>"
		}
	}
	return strings.Join(lines, "\n")
}

type listKind int

const (
	notList listKind = iota
	bulletList
	orderedList
)

func listItem(line string) (listKind, string) {
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return bulletList, m[1]
	}
	if m := orderedPattern.FindStringSubmatch(line); m != nil {
		return orderedList, m[1]
	}
	return notList, ""
}

// Lists wraps runs of list items in ul or ol. A run continues across blank
// lines as long as the next item is of the same kind, so two lists separated
// only by blank lines merge into one.
func Lists(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		kind, text := listItem(lines[i])
		if kind == notList {
			out = append(out, lines[i])
			i++
			continue
		}
		tag := "ul"
		if kind == orderedList {
			tag = "ol"
		}
		out = append(out, "<"+tag+">", "<li>"+text+"</li>")
		i++
		for i < len(lines) {
			j := i
			for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
				j++
			}
			if j == len(lines) {
				break
			}
			k, t := listItem(lines[j])
			if k != kind {
				break
			}
			out = append(out, "<li>"+t+"</li>")
			i = j + 1
		}
		out = append(out, "</"+tag+">")
	}
	return strings.Join(out, "\n")
}

// Paragraphs wraps every blank-line delimited segment in p tags, block
// elements included.
func Paragraphs(s string) string {
	var parts []string
	for _, seg := range paragraphSplit.Split(s, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		parts = append(parts, "<p>"+seg+"</p>")
	}
	return strings.Join(parts, "\n")
}
