package openapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want []string
	}{
		{
			name: "valid document",
			raw: map[string]any{
				"openapi": "3.0.3",
				"info":    map[string]any{"title": "T", "version": "1.0"},
				"paths":   map[string]any{},
			},
			want: nil,
		},
		{
			name: "valid swagger 2.0 document",
			raw: map[string]any{
				"swagger": "2.0",
				"info":    map[string]any{"title": "T", "version": "1.0"},
				"paths":   map[string]any{},
			},
			want: nil,
		},
		{
			name: "missing version field",
			raw: map[string]any{
				"info":  map[string]any{"title": "T", "version": "1.0"},
				"paths": map[string]any{},
			},
			want: []string{"missing 'openapi' or 'swagger' field"},
		},
		{
			name: "missing info",
			raw: map[string]any{
				"openapi": "3.0.3",
				"paths":   map[string]any{},
			},
			want: []string{"missing 'info' object"},
		},
		{
			name: "info not an object",
			raw: map[string]any{
				"openapi": "3.0.3",
				"info":    "Petstore",
				"paths":   map[string]any{},
			},
			want: []string{"'info' must be an object"},
		},
		{
			name: "info missing title and version",
			raw: map[string]any{
				"openapi": "3.0.3",
				"info":    map[string]any{},
				"paths":   map[string]any{},
			},
			want: []string{"missing 'info.title'", "missing 'info.version'"},
		},
		{
			name: "missing paths",
			raw: map[string]any{
				"openapi": "3.0.3",
				"info":    map[string]any{"title": "T", "version": "1.0"},
			},
			want: []string{"missing 'paths' object"},
		},
		{
			name: "everything missing",
			raw:  map[string]any{},
			want: []string{
				"missing 'openapi' or 'swagger' field",
				"missing 'info' object",
				"missing 'paths' object",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Raw: tt.raw}
			got := doc.Validate()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
			if wantValid := len(tt.want) == 0; doc.IsValid() != wantValid {
				t.Errorf("IsValid() = %v, want %v", doc.IsValid(), wantValid)
			}
		})
	}
}
