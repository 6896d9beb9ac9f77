package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgallion1/sitegen/internal/config"
	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/feed"
	"github.com/dgallion1/sitegen/internal/frontmatter"
	"github.com/dgallion1/sitegen/internal/related"
	"github.com/dgallion1/sitegen/internal/render"
	"github.com/dgallion1/sitegen/internal/search"
)

// Builder runs the content build: load, per-document records, corpus stages.
type Builder struct {
	cfg         *config.Config
	log         *slog.Logger
	renderer    *render.Renderer
	highlighter *render.Highlighter
	now         func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock replaces time.Now, which supplies default dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func New(cfg *config.Config, log *slog.Logger, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, log: log, now: time.Now}
	if cfg.Highlight {
		b.highlighter = render.NewHighlighter(cfg.HighlightStyle)
	}
	b.renderer = render.New(render.WithHighlighter(b.highlighter))
	for _, o := range opts {
		o(b)
	}
	return b
}

// Neighbours are the adjacent records in published order.
type Neighbours struct {
	Prev string `json:"prev,omitempty"` // Newer record key
	Next string `json:"next,omitempty"` // Older record key
}

// Result is everything a build produced, ready for Write.
type Result struct {
	Records    []*content.Record // Date descending
	Related    map[string][]string
	Neighbours map[string]Neighbours
	Edges      []related.Edge
	Index      []search.Entry
	Feed       feed.Feed
	CSS        string // Highlight stylesheet, empty when highlighting is off
	Report     *Report
}

// Load reads the configured content tree.
func (b *Builder) Load(ctx context.Context) ([]content.Document, error) {
	return Load(ctx, b.cfg.ContentDir, b.cfg.Site.Categories)
}

// Build loads and processes the whole corpus. A failing document is logged,
// reported and skipped; a failing corpus stage aborts the build.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	report := NewReport(b.now())
	docs, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	b.log.Info("loaded documents", "count", len(docs), "content_dir", b.cfg.ContentDir)

	seen := make(map[string]string)
	var records []*content.Record
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log := b.log.With("path", doc.Path, "category", doc.Category)

		rec, warnings, err := b.BuildRecord(doc)
		for _, w := range warnings {
			log.Warn("document warning", "warning", w)
		}
		if err != nil {
			log.Error("build record failed", "error", err)
			report.Add(DocReport{Path: doc.Path, Status: StatusFailed, Error: err.Error(), Warnings: warnings})
			continue
		}
		if b.log.Enabled(ctx, slog.LevelDebug) {
			for _, d := range frontmatter.Divergences(doc.Raw) {
				log.Debug("header reads differently as YAML", "divergence", d.String())
			}
		}

		entry := DocReport{Path: doc.Path, Key: rec.Key, Warnings: warnings, ContentHash: rec.ContentHash}
		if prev, dup := seen[rec.Key]; dup {
			err := fmt.Errorf("duplicate key %s, first defined in %s", rec.Key, prev)
			log.Error("build record failed", "error", err)
			entry.Status, entry.Error = StatusFailed, err.Error()
			report.Add(entry)
			continue
		}
		if rec.Draft && !b.cfg.IncludeDrafts {
			log.Info("draft skipped", "key", rec.Key)
			entry.Status = StatusDraftSkipped
			report.Add(entry)
			continue
		}
		seen[rec.Key] = doc.Path
		entry.Status = StatusBuilt
		report.Add(entry)
		records = append(records, rec)
	}

	res, err := b.corpus(records)
	if err != nil {
		return nil, err
	}
	res.Report = report
	report.Finish(b.now())
	b.log.Info("build complete",
		"built", report.Count(StatusBuilt),
		"drafts_skipped", report.Count(StatusDraftSkipped),
		"failed", report.Count(StatusFailed),
	)
	return res, nil
}

// corpus runs the stages that need every record at once.
func (b *Builder) corpus(records []*content.Record) (*Result, error) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })

	res := &Result{
		Records:    records,
		Related:    make(map[string][]string, len(records)),
		Neighbours: make(map[string]Neighbours, len(records)),
	}
	for i, rec := range records {
		keys := []string{}
		for _, r := range related.Find(rec, records, b.cfg.RelatedLimit) {
			keys = append(keys, r.Key)
		}
		res.Related[rec.Key] = keys

		var n Neighbours
		if i > 0 {
			n.Prev = records[i-1].Key
		}
		if i < len(records)-1 {
			n.Next = records[i+1].Key
		}
		res.Neighbours[rec.Key] = n
	}
	res.Edges = related.Edges(records, b.cfg.RelatedLimit)
	res.Index = search.Build(records, b.cfg.ExcerptLength)

	site := feed.Site{
		Title:       b.cfg.Site.Title,
		Description: b.cfg.Site.Description,
		URL:         b.cfg.Site.URL,
		Language:    b.cfg.Site.Language,
	}
	res.Feed = feed.Build(site, records, b.cfg.FeedLimit, b.now())

	if b.highlighter != nil {
		css, err := b.highlighter.CSS()
		if err != nil {
			return nil, fmt.Errorf("generate highlight css: %w", err)
		}
		res.CSS = css
	}
	return res, nil
}
