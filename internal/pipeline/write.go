package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/related"
	"github.com/dgallion1/sitegen/internal/search"
)

// ErrUnsafeOutputDir guards the output clean against wiping the wrong tree.
var ErrUnsafeOutputDir = errors.New("unsafe output directory")

// Artifact names under the output directory.
const (
	RecordsFile  = "records.json"
	IndexFile    = "search-index.json"
	ScriptFile   = "js/search.js"
	FeedFile     = "feed.xml"
	CSSFile      = "css/highlight.css"
	ManifestFile = "manifest.json"
)

// Manifest describes one build's output.
type Manifest struct {
	BuildID     string          `json:"build_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Report      ReportSnapshot  `json:"report"`
	Outputs     []ManifestEntry `json:"outputs"`
	Related     []related.Edge  `json:"related"` // Every scored pair, source order
}

type ManifestEntry struct {
	Key         string `json:"key"`
	Path        string `json:"path"`
	SourceHash  string `json:"source_hash"`
	ContentHash string `json:"content_hash"`
}

// recordView is the records.json shape handed to the page templates.
type recordView struct {
	*content.Record
	URL      string   `json:"url"`
	Related  []string `json:"related"`
	Prev     string   `json:"prev,omitempty"`
	Next     string   `json:"next,omitempty"`
	HTMLPath string   `json:"htmlPath"`
}

// Write cleans the output directory and writes every artifact of res.
func (b *Builder) Write(ctx context.Context, res *Result) (*Manifest, error) {
	out := b.cfg.OutputDir
	if err := checkOutputDir(out, b.cfg.ContentDir); err != nil {
		return nil, err
	}
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("clean output dir: %w", err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	m := &Manifest{BuildID: uuid.NewString(), GeneratedAt: b.now().UTC(), Outputs: []ManifestEntry{}, Related: res.Edges}
	if m.Related == nil {
		m.Related = []related.Edge{}
	}
	views := make([]recordView, 0, len(res.Records))
	for _, rec := range res.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := rec.URL()
		if err := writeFile(out, rel, []byte(rec.HTML)); err != nil {
			return nil, err
		}
		n := res.Neighbours[rec.Key]
		views = append(views, recordView{
			Record:   rec,
			URL:      rel,
			Related:  res.Related[rec.Key],
			Prev:     n.Prev,
			Next:     n.Next,
			HTMLPath: rel,
		})
		m.Outputs = append(m.Outputs, ManifestEntry{
			Key:         rec.Key,
			Path:        rel,
			SourceHash:  rec.ContentHash,
			ContentHash: ContentHashHex([]byte(rec.HTML)),
		})
	}

	if err := writeJSON(out, RecordsFile, views); err != nil {
		return nil, err
	}
	index := res.Index
	if index == nil {
		index = []search.Entry{}
	}
	if err := writeJSON(out, IndexFile, index); err != nil {
		return nil, err
	}
	script, err := search.Script(index, search.DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("generate search script: %w", err)
	}
	if err := writeFile(out, ScriptFile, script); err != nil {
		return nil, err
	}
	if err := writeFile(out, FeedFile, res.Feed.Render()); err != nil {
		return nil, err
	}
	if res.CSS != "" {
		if err := writeFile(out, CSSFile, []byte(res.CSS)); err != nil {
			return nil, err
		}
	}

	if res.Report != nil {
		m.Report = res.Report.Snapshot()
	}
	if err := writeJSON(out, ManifestFile, m); err != nil {
		return nil, err
	}
	b.log.Info("artifacts written", "output_dir", out, "build_id", m.BuildID, "pages", len(m.Outputs))
	return m, nil
}

func checkOutputDir(out, contentDir string) error {
	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}
	cwd, _ := os.Getwd()
	if abs == filepath.Dir(abs) || abs == cwd {
		return fmt.Errorf("%w: %s", ErrUnsafeOutputDir, out)
	}
	src, err := filepath.Abs(contentDir)
	if err != nil {
		return fmt.Errorf("resolve content dir: %w", err)
	}
	if rel, err := filepath.Rel(abs, src); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s contains the content directory", ErrUnsafeOutputDir, out)
	}
	return nil
}

func writeFile(root, rel string, data []byte) error {
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func writeJSON(root, rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", rel, err)
	}
	return writeFile(root, rel, append(data, '\n'))
}
