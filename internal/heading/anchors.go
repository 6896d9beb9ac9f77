package heading

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/sitegen/internal/content"
)

// IDs returns every id attribute in an HTML fragment, in document order.
func IDs(fragment string) ([]string, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var ids []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("tokenize fragment: %w", err)
			}
			return ids, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			_, hasAttr := z.TagName()
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "id" {
					ids = append(ids, string(val))
				}
			}
		}
	}
}

// MissingAnchors lists anchor IDs of headings that no element in the rendered
// fragment carries. A non-empty result means the table of contents would link
// to nowhere.
func MissingAnchors(fragment string, headings []content.Heading) ([]string, error) {
	ids, err := IDs(fragment)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		present[id] = struct{}{}
	}
	var missing []string
	for _, h := range headings {
		if _, ok := present[h.AnchorID]; !ok {
			missing = append(missing, h.AnchorID)
		}
	}
	return missing, nil
}
