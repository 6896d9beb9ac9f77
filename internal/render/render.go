// Package render turns a post body into an HTML fragment.
//
// Rendering is an ordered list of text substitutions rather than a parse
// tree. Each Stage is a pure string function and the order is fixed; moving a
// stage changes output (bold must run before italic, code must be protected
// before any inline rule sees it).
package render

import (
	"regexp"
	"strings"
)

// Stage is one named substitution pass.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Renderer applies its stages in order.
type Renderer struct {
	stages []Stage
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	highlighter *Highlighter
}

// WithHighlighter renders fenced blocks in a known language through chroma.
// A nil highlighter leaves code blocks as escaped text.
func WithHighlighter(h *Highlighter) Option {
	return func(c *config) { c.highlighter = h }
}

// New builds the standard stage list.
func New(opts ...Option) *Renderer {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return &Renderer{stages: []Stage{
		{"normalize", Normalize},
		{"headings", Headings},
		{"code-blocks", CodeBlocks(c.highlighter)},
		{"inline", Inline},
		{"tables", Tables},
		{"blocks", Blocks},
		{"lists", Lists},
		{"paragraphs", Paragraphs},
		{"restore", Restore},
	}}
}

// Stages returns a copy of the stage list in execution order.
func (r *Renderer) Stages() []Stage {
	return append([]Stage(nil), r.stages...)
}

// Render converts body to an HTML fragment.
func (r *Renderer) Render(body string) string {
	out := body
	for _, s := range r.stages {
		out = s.Apply(out)
	}
	return out
}

// Protected spans are written as U+E000, the span's bytes shifted into
// U+F000..U+F0FF, then U+E001. No substitution pattern matches those runes,
// and the encoding has no newlines, so a protected block survives the line
// and paragraph stages intact.
const (
	openMark  = '\uE000'
	closeMark = '\uE001'
	byteBase  = 0xF000
)

var protectedPattern = regexp.MustCompile(`\x{E000}([\x{F000}-\x{F0FF}]*)\x{E001}`)

func protect(s string) string {
	var b strings.Builder
	b.Grow(len(s)*3 + 6)
	b.WriteRune(openMark)
	for i := 0; i < len(s); i++ {
		b.WriteRune(rune(byteBase + int(s[i])))
	}
	b.WriteRune(closeMark)
	return b.String()
}

// Restore decodes every protected span.
func Restore(s string) string {
	return protectedPattern.ReplaceAllStringFunc(s, func(m string) string {
		buf := make([]byte, 0, len(m)/3)
		for _, r := range m {
			if r >= byteBase && r <= byteBase+0xFF {
				buf = append(buf, byte(r-byteBase))
			}
		}
		return string(buf)
	})
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
