package frontmatter

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dgallion1/sitegen/internal/content"
)

//go:embed schema.json
var schemaJSON []byte

// Issue is a single lint finding for a metadata key.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	loc := i.Location
	if loc == "" {
		loc = "#"
	}
	return loc + ": " + i.Message
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("metadata.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("metadata.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Lint checks metadata against the shape the site templates expect. No field
// is required and unknown fields pass. Lint never alters meta.
func Lint(meta content.Metadata) []Issue {
	s, err := compiledSchema()
	if err != nil {
		return []Issue{{Message: err.Error()}}
	}
	if meta == nil {
		meta = content.Metadata{}
	}
	err = s.Validate(meta.Interface())
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Message: err.Error()}}
	}
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	return issues
}
