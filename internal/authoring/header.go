package authoring

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/frontmatter"
)

// ErrUnrepresentable reports a value the restricted header format would read
// back differently.
var ErrUnrepresentable = errors.New("value not representable in header")

// Field is one header entry. Fields are written in slice order.
type Field struct {
	Key   string
	Value content.Value
}

// EncodeHeader writes fields as a delimited header block that
// frontmatter.Parse reads back to the same metadata.
func EncodeHeader(fields []Field) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range fields {
		if err := checkKey(f.Key); err != nil {
			return "", err
		}
		if err := encodeValue(&b, "", f.Key, f.Value, true); err != nil {
			return "", fmt.Errorf("encode %s: %w", f.Key, err)
		}
	}
	b.WriteString("---\n")
	return b.String(), nil
}

func encodeValue(b *strings.Builder, indent, key string, v content.Value, top bool) error {
	switch v.Kind() {
	case content.KindList:
		items, _ := v.List()
		if len(items) == 0 {
			return fmt.Errorf("%w: empty list", ErrUnrepresentable)
		}
		fmt.Fprintf(b, "%s%s:\n", indent, key)
		for _, item := range items {
			if err := checkText(item); err != nil {
				return err
			}
			fmt.Fprintf(b, "%s  - %s\n", indent, item)
		}
		return nil
	case content.KindMap:
		if !top {
			return fmt.Errorf("%w: sections nest one level", ErrUnrepresentable)
		}
		m, _ := v.Map()
		fmt.Fprintf(b, "%s:\n", key)
		for _, k := range m.Keys() {
			if err := checkKey(k); err != nil {
				return err
			}
			if err := encodeValue(b, "  ", k, m[k], false); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		return nil
	}

	s, err := scalar(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "%s%s: %s\n", indent, key, s)
	return nil
}

func scalar(v content.Value) (string, error) {
	switch v.Kind() {
	case content.KindNull:
		return "null", nil
	case content.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b), nil
	case content.KindNumber:
		n, _ := v.Num()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", fmt.Errorf("%w: %v", ErrUnrepresentable, n)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	s, _ := v.Str()
	if err := checkText(s); err != nil {
		return "", err
	}
	if !frontmatter.Coerce(s).Equal(v) {
		return "", fmt.Errorf("%w: %q reads back as %s", ErrUnrepresentable, s, frontmatter.Coerce(s).Kind())
	}
	return s, nil
}

func checkKey(k string) error {
	if k == "" || k != strings.TrimSpace(k) || strings.ContainsAny(k, ":\n") ||
		strings.HasPrefix(k, "#") || strings.HasPrefix(k, "- ") {
		return fmt.Errorf("%w: key %q", ErrUnrepresentable, k)
	}
	return nil
}

func checkText(s string) error {
	if s == "" || s != strings.TrimSpace(s) || strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("%w: text %q", ErrUnrepresentable, s)
	}
	return nil
}
