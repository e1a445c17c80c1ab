package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/GAKiknadze/swagger-to-docs/internal"
)

// Document is a loaded OpenAPI/Swagger specification. Raw holds the tree
// exactly as parsed from disk and is the target for $ref resolution; Spec is
// the v3 view used for indexing (Swagger 2.0 inputs are converted). Neither
// is mutated after Load.
type Document struct {
	Path          string
	Raw           map[string]any
	Spec          *openapi3.T
	SourceVersion string // value of the "openapi" or "swagger" key
}

// Load reads a JSON or YAML specification file from disk.
func Load(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec %s: %w", path, err)
	}
	doc, err := Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse builds a Document from raw spec bytes. The format is sniffed: data
// starting with "{" is treated as JSON, anything else as YAML.
func Parse(ctx context.Context, name string, data []byte) (*Document, error) {
	raw, err := parseRaw(data)
	if err != nil {
		return nil, fmt.Errorf("parsing spec %s: %w", name, err)
	}

	doc := &Document{Raw: raw}

	if v, ok := raw["swagger"].(string); ok {
		doc.SourceVersion = v
		spec, err := convertV2(raw)
		if err != nil {
			return nil, fmt.Errorf("converting Swagger 2.0 spec %s: %w", name, err)
		}
		doc.Spec = spec
		return doc, nil
	}

	if v, ok := raw["openapi"].(string); ok {
		doc.SourceVersion = v
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parsing spec %s: %w", name, err)
	}

	// Full validation is advisory. Plenty of real-world specs have minor
	// issues and we can still document them.
	if err := spec.Validate(ctx); err != nil {
		internal.Warnf("spec validation for %s: %v", name, err)
	}

	doc.Spec = spec
	return doc, nil
}

func parseRaw(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	var raw map[string]any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// convertV2 upgrades a Swagger 2.0 tree to an OpenAPI 3 spec so the rest of
// the pipeline only deals with v3. The Raw tree keeps its 2.0 shape, so
// #/definitions pointers still resolve against it.
func convertV2(raw map[string]any) (*openapi3.T, error) {
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var v2 openapi2.T
	if err := json.Unmarshal(jsonData, &v2); err != nil {
		return nil, err
	}
	return openapi2conv.ToV3(&v2)
}

// Title returns info.title from the raw tree, or "" when absent.
func (d *Document) Title() string {
	info, _ := d.Raw["info"].(map[string]any)
	title, _ := info["title"].(string)
	return title
}

// Version returns info.version from the raw tree, or "" when absent.
func (d *Document) Version() string {
	info, _ := d.Raw["info"].(map[string]any)
	version, _ := info["version"].(string)
	return version
}

// EncodeJSON serializes the raw tree back to indented JSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(d.Raw, "", "  ")
}

// Save writes the raw tree to a file as indented JSON.
func (d *Document) Save(path string) error {
	data, err := d.EncodeJSON()
	if err != nil {
		return fmt.Errorf("encoding spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing spec %s: %w", path, err)
	}
	return nil
}

// Resolve dereferences a local JSON pointer of the form
// "#/components/schemas/Name" against the raw tree. It fails on non-local
// references and on any absent segment.
func (d *Document) Resolve(ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("unsupported reference %q: only local #/ pointers are resolvable", ref)
	}

	var cur any = d.Raw
	for _, seg := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		// JSON pointer escaping: ~1 is "/", ~0 is "~".
		seg = strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("resolving %s: segment %q is not an object", ref, seg)
		}
		next, ok := m[seg]
		if !ok {
			return nil, fmt.Errorf("resolving %s: segment %q not found", ref, seg)
		}
		cur = next
	}
	return cur, nil
}

// Schemas returns the reusable schema definitions: components/schemas for
// OpenAPI 3, definitions for Swagger 2.0.
func (d *Document) Schemas() map[string]any {
	if components, ok := d.Raw["components"].(map[string]any); ok {
		if schemas, ok := components["schemas"].(map[string]any); ok {
			return schemas
		}
	}
	if defs, ok := d.Raw["definitions"].(map[string]any); ok {
		return defs
	}
	return nil
}

// SecuritySchemes returns components/securitySchemes (or securityDefinitions
// for Swagger 2.0).
func (d *Document) SecuritySchemes() map[string]any {
	if components, ok := d.Raw["components"].(map[string]any); ok {
		if schemes, ok := components["securitySchemes"].(map[string]any); ok {
			return schemes
		}
	}
	if defs, ok := d.Raw["securityDefinitions"].(map[string]any); ok {
		return defs
	}
	return nil
}

// GlobalSecurity returns the document-level security requirements.
func (d *Document) GlobalSecurity() []any {
	sec, _ := d.Raw["security"].([]any)
	return sec
}

// RequestBodySchema returns the first content schema of the request body for
// an operation, or nil when the operation has none.
func (d *Document) RequestBodySchema(path, method string) map[string]any {
	op := d.Operation(path, method)
	if op == nil {
		return nil
	}
	body, _ := op["requestBody"].(map[string]any)
	content, _ := body["content"].(map[string]any)
	for _, v := range content {
		media, _ := v.(map[string]any)
		if schema, ok := media["schema"].(map[string]any); ok {
			return schema
		}
	}
	return nil
}

// ResponseSchemas returns status code -> content schema for an operation.
func (d *Document) ResponseSchemas(path, method string) map[string]map[string]any {
	op := d.Operation(path, method)
	if op == nil {
		return nil
	}
	responses, _ := op["responses"].(map[string]any)
	out := make(map[string]map[string]any)
	for status, v := range responses {
		resp, _ := v.(map[string]any)
		content, _ := resp["content"].(map[string]any)
		for _, cv := range content {
			media, _ := cv.(map[string]any)
			if schema, ok := media["schema"].(map[string]any); ok {
				out[status] = schema
				break
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Operation returns the raw operation object for a path and method, or nil.
func (d *Document) Operation(path, method string) map[string]any {
	paths, _ := d.Raw["paths"].(map[string]any)
	item, _ := paths[path].(map[string]any)
	op, _ := item[strings.ToLower(method)].(map[string]any)
	return op
}
