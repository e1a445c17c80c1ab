package docgen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/GAKiknadze/swagger-to-docs/internal"
	"github.com/GAKiknadze/swagger-to-docs/llm"
	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

// AdvancedGenerator is the alternative implementation: operations are
// pre-formatted into readable detail blocks instead of raw JSON, referenced
// schemas are resolved inline, and the README opens with a model-written
// overview of the whole API.
type AdvancedGenerator struct {
	model   llm.Model
	opts    Options
	prompts *promptSet
}

// NewAdvancedGenerator builds the advanced generator.
func NewAdvancedGenerator(model llm.Model, opts Options) (*AdvancedGenerator, error) {
	prompts, err := promptsFor(opts.Language)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "docs"
	}
	return &AdvancedGenerator{model: model, opts: opts, prompts: prompts}, nil
}

// ProcessFile documents a single specification file.
func (g *AdvancedGenerator) ProcessFile(ctx context.Context, path string) error {
	doc, err := openapi.Load(ctx, path)
	if err != nil {
		return err
	}

	idx := openapi.BuildIndex(path, doc)
	dir, err := specDir(g.opts.OutputDir, doc.Title())
	if err != nil {
		return err
	}

	grouped := groupByTag(idx)
	internal.Logf("found %d endpoints in %d tags", idx.Count(), len(grouped))

	for _, tag := range sortedTags(grouped) {
		endpoints := grouped[tag]
		internal.Logf("processing tag: %s", tag)

		if body, err := g.tagDoc(ctx, doc, tag, endpoints); err != nil {
			internal.Errorf("tag %s: %v", tag, err)
		} else if err := writeTagFile(dir, tag, body); err != nil {
			internal.Errorf("tag %s: %v", tag, err)
		}

		for _, detail := range endpoints {
			if body, err := g.endpointDoc(ctx, doc, detail); err != nil {
				internal.Errorf("endpoint %s %s: %v", detail.Method, detail.Path, err)
			} else if err := writeEndpointFile(dir, detail, tag, body); err != nil {
				internal.Errorf("endpoint %s %s: %v", detail.Method, detail.Path, err)
			}
		}
	}

	overview, err := g.overviewDoc(ctx, doc, idx, len(grouped))
	if err != nil {
		internal.Errorf("overview: %v", err)
		overview = ""
	}

	if err := writeIndex(dir, doc, grouped, overview); err != nil {
		return err
	}
	internal.Logf("documentation for %q created in %s", doc.Title(), dir)
	return nil
}

// ProcessDirectory documents every spec file in a directory.
func (g *AdvancedGenerator) ProcessDirectory(ctx context.Context, dir string) error {
	return processDirectory(ctx, g, dir)
}

func (g *AdvancedGenerator) endpointDoc(ctx context.Context, doc *openapi.Document, detail *openapi.EndpointDetail) (string, error) {
	components := "omitted"
	if g.opts.IncludeSchemas {
		components = resolvedSchemaSummary(doc, detail)
	}

	security := "omitted"
	if g.opts.IncludeSecurity {
		security = securitySummary(detail)
	}

	prompt, err := render(g.prompts.endpoint, endpointPromptData{
		Path:             detail.Path,
		Method:           detail.Method,
		Tags:             strings.Join(detail.Tags, ", "),
		OperationDetails: formatOperation(detail),
		Components:       components,
		Security:         security,
	})
	if err != nil {
		return "", err
	}

	return g.model.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func (g *AdvancedGenerator) tagDoc(ctx context.Context, doc *openapi.Document, tag string, endpoints []*openapi.EndpointDetail) (string, error) {
	var lines []string
	for _, ep := range endpoints {
		lines = append(lines, fmt.Sprintf("- **%s** %s: %s", ep.Method, ep.Path, ep.Summary))
	}

	prompt, err := render(g.prompts.tag, tagPromptData{
		Tag:           tag,
		Description:   tagDescription(doc, tag),
		EndpointsList: strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", err
	}

	return g.model.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func (g *AdvancedGenerator) overviewDoc(ctx context.Context, doc *openapi.Document, idx *openapi.Index, totalTags int) (string, error) {
	stats := idx.Stats()

	description := ""
	if info, ok := doc.Raw["info"].(map[string]any); ok {
		description, _ = info["description"].(string)
	}

	components := fmt.Sprintf("schemas: %d, security schemes: %d", stats.Schemas, stats.SecuritySchemes)

	prompt, err := render(g.prompts.overview, overviewPromptData{
		Title:          stats.Title,
		Version:        stats.Version,
		Description:    description,
		TotalEndpoints: stats.TotalEndpoints,
		TotalTags:      totalTags,
		Components:     components,
	})
	if err != nil {
		return "", err
	}

	return g.model.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

// formatOperation renders an endpoint detail as a readable block for the
// prompt.
func formatOperation(detail *openapi.EndpointDetail) string {
	var parts []string

	if detail.Summary != "" {
		parts = append(parts, "**Summary:** "+detail.Summary)
	}
	if detail.Description != "" {
		parts = append(parts, "**Description:** "+detail.Description)
	}
	if detail.OperationID != "" {
		parts = append(parts, "**Operation ID:** "+detail.OperationID)
	}
	if detail.Deprecated {
		parts = append(parts, "**Deprecated**")
	}

	if len(detail.Parameters) > 0 {
		parts = append(parts, "\n**Parameters:**")
		for _, p := range detail.Parameters {
			req := "optional"
			if p.Required {
				req = "required"
			}
			parts = append(parts, fmt.Sprintf("- `%s` (%s, %s, %s): %s", p.Name, p.In, p.Type, req, p.Description))
		}
	}

	if detail.RequestBody != nil {
		parts = append(parts, "\n**Request Body:**")
		parts = append(parts, "- Content Type: "+detail.RequestBody.ContentType)
		if len(detail.RequestBody.Required) > 0 {
			parts = append(parts, "- Required fields: "+strings.Join(detail.RequestBody.Required, ", "))
		}
		for name, typ := range detail.RequestBody.Properties {
			parts = append(parts, fmt.Sprintf("- `%s`: %v", name, typ))
		}
	}

	if len(detail.Responses) > 0 {
		parts = append(parts, "\n**Responses:**")
		statuses := make([]string, 0, len(detail.Responses))
		for status := range detail.Responses {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			parts = append(parts, fmt.Sprintf("- `%s`: %s", status, detail.Responses[status]))
		}
	}

	return strings.Join(parts, "\n")
}

// resolvedSchemaSummary dereferences every $ref the operation mentions and
// renders the resolved subtrees, so the model sees the actual shapes instead
// of pointer strings.
func resolvedSchemaSummary(doc *openapi.Document, detail *openapi.EndpointDetail) string {
	refs := collectRefs(doc.Operation(detail.Path, detail.Method))
	if len(refs) == 0 {
		return schemaNameSummary(doc, 10)
	}

	var sb strings.Builder
	for _, ref := range refs {
		resolved, err := doc.Resolve(ref)
		if err != nil {
			internal.Warnf("resolving %s: %v", ref, err)
			continue
		}
		name := ref[strings.LastIndex(ref, "/")+1:]
		sb.WriteString(fmt.Sprintf("### %s\n%s\n", name, renderSchema(resolved)))
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}

// collectRefs walks a raw subtree and returns the distinct local $ref
// strings, sorted.
func collectRefs(value any) []string {
	seen := make(map[string]bool)
	var walk func(any)
	walk = func(v any) {
		switch node := v.(type) {
		case map[string]any:
			for key, child := range node {
				if key == "$ref" {
					if ref, ok := child.(string); ok && strings.HasPrefix(ref, "#/") {
						seen[ref] = true
					}
					continue
				}
				walk(child)
			}
		case []any:
			for _, child := range node {
				walk(child)
			}
		}
	}
	walk(value)

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// renderSchema flattens a resolved schema subtree into "- name (type):
// description" lines.
func renderSchema(schema any) string {
	m, ok := schema.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", schema)
	}

	props, _ := m["properties"].(map[string]any)
	if len(props) == 0 {
		if t, ok := m["type"].(string); ok {
			return "type: " + t
		}
		return "(no properties)"
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		prop, _ := props[name].(map[string]any)
		t, _ := prop["type"].(string)
		if t == "" {
			if ref, ok := prop["$ref"].(string); ok {
				t = ref
			} else {
				t = "object"
			}
		}
		desc, _ := prop["description"].(string)
		if desc != "" {
			sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", name, t, desc))
		} else {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", name, t))
		}
	}
	return sb.String()
}
