package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/sitegen/internal/doctree"
)

// PDFReader makes one section per page. Scanned documents carry no text
// layer for the Go library, so with FallbackPdftotext an empty or failed
// extraction is retried through pdftotext.
type PDFReader struct {
	FallbackPdftotext bool
}

func (p *PDFReader) Read(r io.Reader, filename string) (*doctree.DocTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	pages, err := libraryPages(data)
	if p.FallbackPdftotext && (err != nil || blank(pages)) {
		alt, altErr := pdftotextPages(data)
		switch {
		case altErr == nil:
			pages, err = alt, nil
		case err != nil:
			err = errors.Join(err, altErr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pageOutline(baseTitle(filename), pages), nil
}

// libraryPages returns the plain text of every page. A page that cannot be
// decoded stays empty so numbering follows the source.
func libraryPages(data []byte) ([]string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	pages := make([]string, reader.NumPage())
	for i := range pages {
		page := reader.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		if text, err := page.GetPlainText(nil); err == nil {
			pages[i] = text
		}
	}
	return pages, nil
}

// pdftotextPages pipes data through pdftotext, which ends each page with a
// form feed.
func pdftotextPages(data []byte) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return strings.Split(string(out), "\f"), nil
}

func blank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}
