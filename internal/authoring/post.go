// Package authoring scaffolds new posts in the content tree.
package authoring

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dgallion1/sitegen/internal/content"
)

// MaxSlugLength caps Slugify output.
const MaxSlugLength = 80

// ErrPostExists reports a post file that is already on disk.
var ErrPostExists = errors.New("post already exists")

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a file-name-safe slug.
func Slugify(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}

// Difficulties are the accepted difficulty values, in any case.
var Difficulties = []string{"beginner", "intermediate", "advanced", "expert"}

// Options describe a new post. Empty fields take defaults in NewPost.
type Options struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Category    string
	Tags        []string
	Difficulty  string
	Author      string
	Draft       bool
	Body        string // Replaces the outline stub when set
	Now         func() time.Time
}

func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Title, validation.Required),
		validation.Field(&o.Category, validation.Required, validation.By(plainName)),
		validation.Field(&o.Date, validation.Date("2006-01-02")),
		validation.Field(&o.Difficulty, validation.By(difficulty)),
		validation.Field(&o.Tags, validation.Each(validation.Required)),
	)
}

func plainName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return validation.NewError("sitegen.authoring.category_invalid", "must be a plain directory name")
	}
	return nil
}

func difficulty(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, d := range Difficulties {
		if strings.EqualFold(s, d) {
			return nil
		}
	}
	return validation.NewError("sitegen.authoring.difficulty_invalid", "must be one of "+strings.Join(Difficulties, ", "))
}

// Post is a scaffolded document.
type Post struct {
	Slug     string
	Category string
	Fields   []Field
	Body     string
}

// NewPost validates opts and fills defaults: today's date, a description
// naming the title, the category as the only tag, and an outline body.
func NewPost(opts Options) (*Post, error) {
	opts.Title = strings.TrimSpace(opts.Title)
	opts.Category = strings.TrimSpace(opts.Category)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Date == "" {
		opts.Date = opts.Now().Format("2006-01-02")
	}
	var tags []string
	for _, t := range opts.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	opts.Tags = tags
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate post: %w", err)
	}

	slug := Slugify(opts.Title)
	if slug == "" {
		return nil, fmt.Errorf("validate post: title %q has no slug characters", opts.Title)
	}
	if opts.Description == "" {
		opts.Description = "Deep dive into " + opts.Title
	}
	if len(opts.Tags) == 0 {
		opts.Tags = []string{opts.Category}
	}

	fields := []Field{
		{"title", content.String(opts.Title)},
		{"description", content.String(strings.TrimSpace(opts.Description))},
		{"date", content.String(opts.Date)},
		{"category", content.String(opts.Category)},
		{"tags", content.List(opts.Tags...)},
	}
	if opts.Difficulty != "" {
		fields = append(fields, Field{"difficulty", content.String(strings.ToLower(opts.Difficulty))})
	}
	if a := strings.TrimSpace(opts.Author); a != "" {
		fields = append(fields, Field{"author", content.String(a)})
	}
	if opts.Draft {
		fields = append(fields, Field{"draft", content.Bool(true)})
	}
	if _, err := EncodeHeader(fields); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}

	body := opts.Body
	if strings.TrimSpace(body) == "" {
		body = outline(opts.Title)
	}
	return &Post{Slug: slug, Category: opts.Category, Fields: fields, Body: body}, nil
}

func outline(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, s := range []struct{ heading, hint string }{
		{"Introduction", "Write your introduction here"},
		{"Main Content", "Write your main content here"},
		{"Performance Analysis", "Add performance analysis, benchmarks, and insights"},
		{"Conclusion", "Summarize key findings and takeaways"},
	} {
		fmt.Fprintf(&b, "## %s\n\n[%s]\n\n", s.heading, s.hint)
	}
	return b.String()
}

// Markdown renders the post file: header block, blank line, body.
func (p *Post) Markdown() (string, error) {
	header, err := EncodeHeader(p.Fields)
	if err != nil {
		return "", err
	}
	return header + "\n" + strings.TrimLeft(p.Body, "\n"), nil
}

// Path is the post location under a content root.
func (p *Post) Path(root string) string {
	return filepath.Join(root, p.Category, p.Slug+".md")
}

// Write stores the post under root and returns its path. An existing file is
// kept unless overwrite is set.
func Write(root string, p *Post, overwrite bool) (string, error) {
	text, err := p.Markdown()
	if err != nil {
		return "", fmt.Errorf("encode post: %w", err)
	}
	path := p.Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrPostExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", fmt.Errorf("write post: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close post: %w", err)
	}
	return path, nil
}
