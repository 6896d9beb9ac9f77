// Package frontmatter reads the metadata header at the top of a post.
//
// The header format is a deliberately small key/value/array subset of YAML:
// flat scalars, one level of nested sections and block arrays of scalars.
// Flow arrays, quoted strings and multiline scalars are kept as literal text.
// Use Divergences to see where a full YAML reader would disagree.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/sitegen/internal/content"
)

// ErrMalformedHeader reports a header the restricted reader refuses.
var ErrMalformedHeader = errors.New("malformed header")

var (
	headerPattern = regexp.MustCompile(`\A---\s*\n((?s:.*?))\n---\s*\n((?s:.*))\z`)
	numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	hexPattern    = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
)

// Result is the outcome of reading one raw document.
type Result struct {
	Metadata content.Metadata
	Body     string
	Header   string // Raw header block without delimiters
	Found    bool   // A delimited header block was present
	Err      error  // Set when a header was found but refused
}

// Split separates the header block from the body. ok is false when the text
// does not start with a delimited header.
func Split(raw string) (header, body string, ok bool) {
	m := headerPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", raw, false
	}
	return m[1], m[2], true
}

// Parse returns the metadata and body of raw. It never fails: without a
// usable header the metadata is empty and the body is the full input.
func Parse(raw string) (content.Metadata, string) {
	res := Read(raw)
	return res.Metadata, res.Body
}

// Read is Parse with the details needed for logging and linting.
func Read(raw string) Result {
	header, body, ok := Split(raw)
	if !ok {
		return Result{Metadata: content.Metadata{}, Body: raw}
	}
	meta, err := ParseHeader(header)
	if err != nil {
		return Result{Metadata: content.Metadata{}, Body: raw, Header: header, Found: true, Err: err}
	}
	return Result{Metadata: meta, Body: body, Header: header, Found: true}
}

// slot addresses a value either at the top level or inside a section.
type slot struct {
	section string
	key     string
}

type walker struct {
	meta content.Metadata

	inSection     bool
	section       string
	sectionIndent int

	lastKey *slot // Where a bare array item lands

	inArray   bool
	array     slot
	arrIndent int
}

// ParseHeader walks a header block line by line.
func ParseHeader(block string) (content.Metadata, error) {
	if !utf8.ValidString(block) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedHeader)
	}

	w := &walker{meta: content.Metadata{}}
	for n, line := range strings.Split(block, "\n") {
		if err := w.line(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
	}
	return w.meta, nil
}

func (w *walker) line(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	indent := leadingSpaces(line)

	if strings.HasPrefix(trimmed, "- ") {
		item := strings.TrimSpace(trimmed[2:])
		switch {
		case w.inArray && indent >= w.arrIndent:
			w.appendTo(w.array, item)
		case w.lastKey != nil:
			w.array = *w.lastKey
			w.inArray = true
			w.arrIndent = indent
			w.appendTo(w.array, item)
		}
		return nil
	}

	idx := strings.Index(trimmed, ":")
	if idx < 0 {
		return nil
	}
	key := strings.TrimSpace(trimmed[:idx])
	value := strings.TrimSpace(trimmed[idx+1:])
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrMalformedHeader)
	}

	if w.inArray && indent <= w.arrIndent {
		w.inArray = false
	}
	if w.inSection && indent <= w.sectionIndent {
		w.inSection = false
	}

	if value == "" {
		if w.inSection {
			s := slot{section: w.section, key: key}
			if w.get(s).IsNull() {
				w.set(s, content.Map(nil))
			}
			w.lastKey = &s
			return nil
		}
		if !w.meta.Has(key) {
			w.meta[key] = content.Map(nil)
		}
		w.inSection = true
		w.section = key
		w.sectionIndent = indent
		w.lastKey = &slot{key: key}
		return nil
	}

	s := slot{key: key}
	if w.inSection {
		s.section = w.section
	}
	w.set(s, Coerce(value))
	return nil
}

// sectionMap returns the open nested mapping for name, if it is still one.
func (w *walker) sectionMap(name string) (content.Metadata, bool) {
	if name == "" {
		return nil, false
	}
	return w.meta.Get(name).Map()
}

func (w *walker) get(s slot) content.Value {
	if m, ok := w.sectionMap(s.section); ok {
		return m.Get(s.key)
	}
	return w.meta.Get(s.key)
}

func (w *walker) set(s slot, v content.Value) {
	if m, ok := w.sectionMap(s.section); ok {
		m[s.key] = v
		return
	}
	w.meta[s.key] = v
}

func (w *walker) appendTo(s slot, item string) {
	w.set(s, w.get(s).Append(item))
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// Coerce converts a scalar as written in a header into a typed value.
func Coerce(raw string) content.Value {
	switch strings.ToLower(raw) {
	case "true":
		return content.Bool(true)
	case "false":
		return content.Bool(false)
	case "null":
		return content.Null()
	}
	if numberPattern.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return content.Number(f)
		}
	}
	if hexPattern.MatchString(raw) {
		if n, err := strconv.ParseInt(raw, 0, 64); err == nil {
			return content.Number(float64(n))
		}
	}
	return content.String(raw)
}
