package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

func petstoreExporter(t *testing.T) *Exporter {
	t.Helper()
	doc, err := openapi.Load(context.Background(), filepath.Join("..", "openapi", "testdata", "petstore.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return New(doc, openapi.BuildIndex("petstore", doc))
}

func TestEndpointsCSV(t *testing.T) {
	e := petstoreExporter(t)

	var buf bytes.Buffer
	if err := e.EndpointsCSV(&buf); err != nil {
		t.Fatalf("EndpointsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}

	want := [][]string{
		{"Method", "Path", "Summary", "Tags", "Deprecated"},
		{"GET", "/pets", "List all pets", "pets", "false"},
		{"POST", "/pets", "Create a pet", "pets", "false"},
		{"GET", "/pets/{petId}", "Info for a specific pet", "pets", "false"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestStatisticsJSON(t *testing.T) {
	e := petstoreExporter(t)

	var buf bytes.Buffer
	if err := e.StatisticsJSON(&buf); err != nil {
		t.Fatalf("StatisticsJSON: %v", err)
	}

	var stats struct {
		Title          string         `json:"title"`
		TotalEndpoints int            `json:"total_endpoints"`
		Methods        map[string]int `json:"methods"`
	}
	if err := json.Unmarshal(buf.Bytes(), &stats); err != nil {
		t.Fatalf("decoding statistics: %v", err)
	}

	if stats.Title != "Petstore API" {
		t.Errorf("title = %q, want Petstore API", stats.Title)
	}
	if stats.TotalEndpoints != 3 {
		t.Errorf("total_endpoints = %d, want 3", stats.TotalEndpoints)
	}
	if diff := cmp.Diff(map[string]int{"get": 2, "post": 1}, stats.Methods); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestPostmanCollection(t *testing.T) {
	e := petstoreExporter(t)

	var buf bytes.Buffer
	if err := e.PostmanCollection(&buf); err != nil {
		t.Fatalf("PostmanCollection: %v", err)
	}

	var collection postmanCollection
	if err := json.Unmarshal(buf.Bytes(), &collection); err != nil {
		t.Fatalf("decoding collection: %v", err)
	}

	if collection.Info.Name != "Petstore API" {
		t.Errorf("info.name = %q, want Petstore API", collection.Info.Name)
	}
	if collection.Info.PostmanID == "" {
		t.Error("info._postman_id should be set")
	}
	if collection.Info.Schema != postmanSchema {
		t.Errorf("info.schema = %q", collection.Info.Schema)
	}

	wantVars := []postmanVariable{{Key: "base_url", Value: "https://petstore.example.com/v1"}}
	if diff := cmp.Diff(wantVars, collection.Variable); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	if len(collection.Item) != 3 {
		t.Fatalf("got %d items, want 3", len(collection.Item))
	}

	first := collection.Item[0]
	if first.Name != "List all pets" {
		t.Errorf("item[0].name = %q, want List all pets", first.Name)
	}
	if first.Request.URL.Raw != "{{base_url}}/pets" {
		t.Errorf("item[0].url.raw = %q", first.Request.URL.Raw)
	}
	wantQuery := []postmanQuery{{Key: "limit", Value: "", Disabled: true}}
	if diff := cmp.Diff(wantQuery, first.Request.URL.Query); diff != "" {
		t.Errorf("item[0] query mismatch (-want +got):\n%s", diff)
	}

	last := collection.Item[2]
	if last.Request.Method != "GET" || last.Request.URL.Raw != "{{base_url}}/pets/{petId}" {
		t.Errorf("item[2] = %s %s", last.Request.Method, last.Request.URL.Raw)
	}
	if diff := cmp.Diff([]string{"pets", "{petId}"}, last.Request.URL.Path); diff != "" {
		t.Errorf("item[2] path mismatch (-want +got):\n%s", diff)
	}
}
