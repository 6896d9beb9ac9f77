package frontmatter

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Divergence is a header key whose value under full YAML differs from the
// restricted reading.
type Divergence struct {
	Key        string `json:"key"`
	Restricted string `json:"restricted"`
	YAML       string `json:"yaml"`
}

func (d Divergence) String() string {
	if d.Key == "" {
		return d.YAML
	}
	return fmt.Sprintf("%s: restricted=%s yaml=%s", d.Key, d.Restricted, d.YAML)
}

// Divergences reads the header of raw twice, once with the restricted reader
// and once as full YAML, and lists every top-level key that disagrees. A
// header YAML cannot read yields a single keyless entry.
func Divergences(raw string) []Divergence {
	res := Read(raw)
	if !res.Found {
		return nil
	}

	var full map[string]any
	if _, err := frontmatter.Parse(strings.NewReader(raw), &full); err != nil {
		return []Divergence{{YAML: "yaml error: " + err.Error()}}
	}

	restricted := res.Metadata.Interface()
	keys := make(map[string]struct{}, len(full)+len(restricted))
	for k := range full {
		keys[k] = struct{}{}
	}
	for k := range restricted {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var out []Divergence
	for _, k := range sorted {
		rv, rok := restricted[k]
		yv, yok := full[k]
		yv = canonical(yv)
		if rok == yok && reflect.DeepEqual(rv, yv) {
			continue
		}
		out = append(out, Divergence{Key: k, Restricted: describe(rv, rok), YAML: describe(yv, yok)})
	}
	return out
}

// canonical maps YAML decoder output onto the shapes content.Value.Interface
// produces so the two can be compared directly.
func canonical(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = canonical(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = canonical(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = canonical(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return v
}

func describe(v any, present bool) string {
	if !present {
		return "(absent)"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
