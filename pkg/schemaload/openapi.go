package schemaload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ExtractComponentSchema pulls a named component schema out of an OpenAPI 3
// document and returns it as a plain schema map. Catalogs that publish their
// record schemas inside an OpenAPI spec can feed document types this way.
func ExtractComponentSchema(ctx context.Context, raw []byte, name string) (map[string]any, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.New("schemaload: component schema name is required")
	}
	if len(raw) == 0 {
		return nil, errors.New("schemaload: openapi document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("schemaload: parse openapi document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("schemaload: openapi document has no component schemas")
	}

	ref, ok := doc.Components.Schemas[trimmed]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schemaload: component schema %q not found", trimmed)
	}

	encoded, err := ref.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("schemaload: encode component schema %q: %w", trimmed, err)
	}
	var schema map[string]any
	if err := json.Unmarshal(encoded, &schema); err != nil {
		return nil, fmt.Errorf("schemaload: decode component schema %q: %w", trimmed, err)
	}
	return schema, nil
}
