// Package importer converts foreign documents into Markdown posts. Each
// reader produces a doctree.DocTree; Markdown renders a tree as a post body.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// ErrUnsupportedFormat reports a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Reader converts raw document bytes into a DocTree.
type Reader interface {
	Read(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tune individual readers.
type Options struct {
	PDFFallbackPdftotext bool // Shell out to pdftotext when the Go reader fails
}

// SupportedExtensions lists the file extensions ForFile accepts.
var SupportedExtensions = []string{".txt", ".md", ".markdown", ".csv", ".html", ".htm", ".pdf", ".docx"}

// ForFile returns the reader for filename's extension.
func ForFile(filename string, opts Options) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DetectCategory picks the first category whose name appears in filename,
// case-insensitively. ok is false when none does.
func DetectCategory(filename string, categories []string) (string, bool) {
	name := strings.ToLower(filepath.Base(filename))
	for _, c := range categories {
		if c != "" && strings.Contains(name, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

// baseTitle strips the directory and extension from filename.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
