package provider

import (
	"bytes"
	"fmt"
	"strings"

	"connector-hub/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema validates webhook bodies before an adapter decodes them.
type Schema struct {
	provider domain.ProviderType
	schema   *jsonschema.Schema
}

// MustCompileSchema compiles a JSON Schema document. It panics on an invalid
// schema, which is a programming error caught at startup.
func MustCompileSchema(provider domain.ProviderType, name, doc string) *Schema {
	s, err := CompileSchema(provider, name, doc)
	if err != nil {
		panic(err)
	}
	return s
}

// CompileSchema compiles a JSON Schema document registered under name.
func CompileSchema(provider domain.ProviderType, name, doc string) (*Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	url := "https://connector-hub.local/schemas/" + name
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{provider: provider, schema: compiled}, nil
}

// Validate checks body against the schema. Failures are *domain.PayloadError.
func (s *Schema) Validate(body []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &domain.PayloadError{Provider: s.provider, Reason: "body is not valid JSON"}
	}
	if err := s.schema.Validate(inst); err != nil {
		return &domain.PayloadError{Provider: s.provider, Reason: firstLine(err.Error())}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
