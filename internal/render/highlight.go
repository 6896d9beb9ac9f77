package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter renders code through chroma with CSS classes, so the colours
// live in a single stylesheet rather than inline on every span.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns a highlighter for the named chroma style. Unknown
// names fall back to chroma's default style.
func NewHighlighter(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Highlighter{
		style:     s,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight renders code in lang. ok is false when chroma has no lexer for
// lang or formatting fails; callers then fall back to escaped text.
func (h *Highlighter) Highlight(lang, code string) (string, bool) {
	if lang == "" || strings.EqualFold(lang, "text") {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", false
	}
	return b.String(), true
}

// CSS returns the stylesheet matching the classes Highlight emits.
func (h *Highlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("write highlight css: %w", err)
	}
	return b.String(), nil
}
