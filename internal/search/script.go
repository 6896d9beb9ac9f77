package search

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// The browser ranking mirrors Occurrences and Search: split-count per field,
// score descending, index order on ties.
var scriptTemplate = template.Must(template.New("search.js").Parse(`// Search index for client-side search
const searchIndex = {{.Index}};

function countOccurrences(text, term) {
  if (!text) return 0;
  return text.toLowerCase().split(term).length - 1;
}

// Search function: most occurrences first, index order on ties.
function searchPosts(query) {
  const q = (query || '').trim();
  if (Array.from(q).length < {{.MinQuery}}) return [];

  const term = q.toLowerCase();
  const hits = [];
  searchIndex.forEach((post, i) => {
    let score = countOccurrences(post.title, term) +
      countOccurrences(post.description, term) +
      countOccurrences(post.category, term) +
      countOccurrences(post.difficulty, term);
    (post.tags || []).forEach(tag => { score += countOccurrences(tag, term); });
    if (score > 0) hits.push({ post, score, i });
  });
  hits.sort((a, b) => (b.score - a.score) || (a.i - b.i));
  return hits.slice(0, {{.Limit}}).map(h => h.post);
}

// Highlight search results
function highlightSearchTerm(text, searchTerm) {
  if (!searchTerm) return text;
  const escaped = searchTerm.replace(/[.*+?^${}()|[\]\\]/g, '\\$&');
  return text.replace(new RegExp(escaped, 'gi'), '<mark>$&</mark>');
}
`))

// Script renders js/search.js with the index embedded.
func Script(index []Entry, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if index == nil {
		index = []Entry{}
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal search index: %w", err)
	}
	var b strings.Builder
	err = scriptTemplate.Execute(&b, struct {
		Index    string
		MinQuery int
		Limit    int
	}{string(data), MinQueryLength, limit})
	if err != nil {
		return nil, fmt.Errorf("render search script: %w", err)
	}
	return []byte(b.String()), nil
}
