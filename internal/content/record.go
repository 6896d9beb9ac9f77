package content

import "time"

// Document is a raw file as found on disk.
type Document struct {
	Path     string // Source path
	Category string // Name of the containing directory
	Filename string // Base name including extension
	Raw      string // File contents
}

// Heading is an ATX heading line with its derived anchor.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	AnchorID string `json:"anchorId"`
}

// Record is a fully processed document, ready for the corpus-wide stages and
// the templating collaborator.
type Record struct {
	Key         string    `json:"key"` // category/slug, unique per build
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	DateText    string    `json:"dateText"`
	Tags        []string  `json:"tags"`
	Difficulty  string    `json:"difficulty"`
	Draft       bool      `json:"draft"`
	Metadata    Metadata  `json:"metadata"`

	Body     string    `json:"-"`
	HTML     string    `json:"-"`
	Headings []Heading `json:"headings"`
	TOC      string    `json:"toc,omitempty"`
	ShowTOC  bool      `json:"showToc"`

	WordCount      int    `json:"wordCount"`
	ReadingMinutes int    `json:"readingMinutes"`
	ReadingTime    string `json:"readingTime"`

	SourcePath  string `json:"sourcePath"`
	ContentHash string `json:"contentHash"`
}

// URL is the site-relative location of the rendered page.
func (r *Record) URL() string {
	return r.Category + "/" + r.Slug + ".html"
}

// RecordKey builds the identity used to tell records apart across categories.
func RecordKey(category, slug string) string {
	return category + "/" + slug
}
