package openapi

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func loadFixture(t *testing.T, name string) *Document {
	t.Helper()
	doc, err := Load(context.Background(), filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Load(%s): %v", name, err)
	}
	return doc
}

func TestLoadJSONAndYAMLEquivalent(t *testing.T) {
	jsonDoc := loadFixture(t, "petstore.json")
	yamlDoc := loadFixture(t, "petstore.yaml")

	jsonOut, err := jsonDoc.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON (json source): %v", err)
	}
	yamlOut, err := yamlDoc.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON (yaml source): %v", err)
	}

	if diff := cmp.Diff(string(jsonOut), string(yamlOut)); diff != "" {
		t.Errorf("JSON and YAML loads differ (-json +yaml):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join("testdata", "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading spec") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseMalformedInput(t *testing.T) {
	_, err := Parse(context.Background(), "bad", []byte("{not valid json"))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	path := filepath.Join(t.TempDir(), "copy.json")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("reloading saved spec: %v", err)
	}

	want, _ := doc.EncodeJSON()
	got, _ := reloaded.EncodeJSON()
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	got, err := doc.Resolve("#/components/schemas/Pet")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	components := doc.Raw["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	want := schemas["Pet"]

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve returned wrong subtree (-want +got):\n%s", diff)
	}
}

func TestResolveErrors(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	tests := []struct {
		name string
		ref  string
	}{
		{"missing schema", "#/components/schemas/Unicorn"},
		{"missing section", "#/components/parameters/limit"},
		{"non-local ref", "http://example.com/spec.json#/components/schemas/Pet"},
		{"pointer into scalar", "#/openapi/major"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := doc.Resolve(tt.ref); err == nil {
				t.Errorf("Resolve(%q) succeeded, want error", tt.ref)
			}
		})
	}
}

func TestSchemasAndSecuritySchemes(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	schemas := doc.Schemas()
	if len(schemas) != 3 {
		t.Errorf("Schemas: got %d, want 3", len(schemas))
	}
	if _, ok := schemas["Pet"]; !ok {
		t.Error("Schemas missing Pet")
	}

	schemes := doc.SecuritySchemes()
	if len(schemes) != 1 {
		t.Errorf("SecuritySchemes: got %d, want 1", len(schemes))
	}
	if _, ok := schemes["api_key"]; !ok {
		t.Error("SecuritySchemes missing api_key")
	}
}

func TestSwagger2(t *testing.T) {
	doc := loadFixture(t, "uspto-v2.json")

	if doc.SourceVersion != "2.0" {
		t.Errorf("SourceVersion: got %q, want %q", doc.SourceVersion, "2.0")
	}
	if doc.Spec == nil {
		t.Fatal("Spec is nil: Swagger 2.0 was not converted")
	}

	idx := BuildIndex("legacy", doc)
	if idx.Count() != 1 {
		t.Errorf("Count: got %d, want 1", idx.Count())
	}

	// The raw tree keeps its 2.0 shape, so definitions pointers resolve.
	if _, err := doc.Resolve("#/definitions/Item"); err != nil {
		t.Errorf("Resolve(#/definitions/Item): %v", err)
	}

	schemas := doc.Schemas()
	if _, ok := schemas["Item"]; !ok {
		t.Error("Schemas missing Item from definitions")
	}
}

func TestOperation(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	op := doc.Operation("/pets", "GET")
	if op == nil {
		t.Fatal("Operation(/pets, GET) is nil")
	}
	if got, _ := op["operationId"].(string); got != "listPets" {
		t.Errorf("operationId: got %q, want %q", got, "listPets")
	}

	if doc.Operation("/missing", "GET") != nil {
		t.Error("Operation on missing path should be nil")
	}
}

func TestRequestBodySchema(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	schema := doc.RequestBodySchema("/pets", "POST")
	if schema == nil {
		t.Fatal("RequestBodySchema(/pets, POST) is nil")
	}
	if ref, _ := schema["$ref"].(string); ref != "#/components/schemas/Pet" {
		t.Errorf("$ref: got %q", ref)
	}

	if doc.RequestBodySchema("/pets", "GET") != nil {
		t.Error("GET /pets has no request body, want nil")
	}
}

func TestResponseSchemas(t *testing.T) {
	doc := loadFixture(t, "petstore.json")

	schemas := doc.ResponseSchemas("/pets", "GET")
	if len(schemas) != 2 {
		t.Fatalf("ResponseSchemas: got %d entries, want 2", len(schemas))
	}
	if ref, _ := schemas["200"]["$ref"].(string); ref != "#/components/schemas/Pets" {
		t.Errorf("200 schema $ref: got %q", ref)
	}
}

func TestLoadFromStore(t *testing.T) {
	// Ensure the fixtures stay parseable by the store path as well.
	data, err := os.ReadFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(context.Background(), "petstore", data)
	if err != nil {
		t.Fatalf("Parse yaml: %v", err)
	}
	if doc.Title() != "Petstore API" {
		t.Errorf("Title: got %q", doc.Title())
	}
}
