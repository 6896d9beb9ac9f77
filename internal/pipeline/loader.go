package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/sitegen/internal/content"
)

// ErrContentDirMissing reports a content root that does not exist.
var ErrContentDirMissing = errors.New("content directory missing")

// Load reads every {root}/{category}/*.md document. categories restricts and
// orders the category directories; when empty, every sub-directory of root
// is used in name order. Missing category directories are skipped.
func Load(ctx context.Context, root string, categories []string) ([]content.Document, error) {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrContentDirMissing, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentDirMissing, root)
	}

	if len(categories) == 0 {
		categories, err = Categories(root)
		if err != nil {
			return nil, err
		}
	}

	var docs []content.Document
	for _, cat := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		names, err := markdownFiles(filepath.Join(root, cat))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			p := filepath.Join(root, cat, name)
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("read document %s: %w", p, err)
			}
			docs = append(docs, content.Document{Path: p, Category: cat, Filename: name, Raw: string(data)})
		}
	}
	return docs, nil
}

// Categories lists the visible sub-directories of root by name.
func Categories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list content dir: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// markdownFiles lists *.md files in dir by name. A missing dir yields none.
func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
