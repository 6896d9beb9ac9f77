package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/frontmatter"
	"github.com/dgallion1/sitegen/internal/heading"
	"github.com/dgallion1/sitegen/internal/metrics"
)

// DescriptionLength caps a description taken from the body.
const DescriptionLength = 200

// DateLayout is the canonical date form of records and scaffolded posts.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var errInvalidUTF8 = errors.New("document is not valid UTF-8")

// BuildRecord turns one document into a record. Warnings are problems that
// do not stop the document from being published.
func (b *Builder) BuildRecord(doc content.Document) (*content.Record, []string, error) {
	if !utf8.ValidString(doc.Raw) {
		return nil, nil, errInvalidUTF8
	}
	slug := strings.TrimSuffix(doc.Filename, ".md")
	if slug == "" {
		return nil, nil, fmt.Errorf("derive slug from %q: empty name", doc.Filename)
	}

	var warnings []string
	res := frontmatter.Read(doc.Raw)
	if res.Err != nil {
		warnings = append(warnings, fmt.Sprintf("header ignored: %s", res.Err))
	}
	for _, issue := range frontmatter.Lint(res.Metadata) {
		warnings = append(warnings, "lint: "+issue.String())
	}
	meta, body := res.Metadata, res.Body

	headings := heading.Extract(body)
	html := b.renderer.Render(body)
	missing, err := heading.MissingAnchors(html, headings)
	if err != nil {
		return nil, warnings, fmt.Errorf("check anchors: %w", err)
	}
	for _, id := range missing {
		warnings = append(warnings, fmt.Sprintf("heading anchor %q not rendered", id))
	}
	est := metrics.Compute(body)

	rec := &content.Record{
		Slug:           slug,
		Category:       doc.Category,
		Title:          meta.Str("title"),
		Description:    meta.Str("description"),
		Tags:           meta.Strings("tags"),
		Difficulty:     meta.Str("difficulty"),
		Metadata:       meta,
		Body:           body,
		HTML:           html,
		Headings:       headings,
		TOC:            heading.TOC(headings),
		ShowTOC:        heading.ShowTOC(headings, b.cfg.TOCMin),
		WordCount:      est.WordCount,
		ReadingMinutes: est.ReadingMinutes,
		ReadingTime:    est.ReadingTime,
		SourcePath:     doc.Path,
		ContentHash:    ContentHashHex([]byte(doc.Raw)),
	}
	if c := meta.Str("category"); c != "" {
		rec.Category = c
	}
	if rec.Title == "" {
		rec.Title = firstTitle(body)
	}
	if rec.Description == "" {
		rec.Description = firstDescription(body)
	}
	if rec.Difficulty == "" {
		rec.Difficulty = est.Difficulty
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	rec.Draft, _ = meta.Get("draft").Bool()

	rec.DateText = meta.Str("date")
	if rec.DateText == "" {
		rec.DateText = meta.Str("publishDate")
	}
	if rec.DateText == "" {
		rec.DateText = b.now().Format(DateLayout)
	}
	if t, ok := ParseDate(rec.DateText); ok {
		rec.Date = t
	} else {
		warnings = append(warnings, fmt.Sprintf("unparseable date %q", rec.DateText))
	}

	rec.Key = content.RecordKey(rec.Category, rec.Slug)
	return rec, warnings, nil
}

// ParseDate accepts the date forms seen in post headers.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return "Untitled"
}

func firstDescription(body string) string {
	for _, line := range strings.Split(body, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") || strings.HasPrefix(line, "|") {
			continue
		}
		if utf8.RuneCountInString(t) > DescriptionLength {
			t = string([]rune(t)[:DescriptionLength])
		}
		return t
	}
	return ""
}
