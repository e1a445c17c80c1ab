// Package docgen turns loaded specifications into a Markdown documentation
// tree, asking a language model to draft the prose.
package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/GAKiknadze/swagger-to-docs/internal"
	"github.com/GAKiknadze/swagger-to-docs/llm"
	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

// DocGenerator is the shared surface of the two generator implementations.
type DocGenerator interface {
	ProcessFile(ctx context.Context, path string) error
	ProcessDirectory(ctx context.Context, dir string) error
}

// Generator is the straightforward implementation: the endpoint prompt gets
// the raw operation object as JSON plus a schema-name summary of the
// components section.
type Generator struct {
	model   llm.Model
	opts    Options
	prompts *promptSet
}

// NewGenerator builds the basic generator.
func NewGenerator(model llm.Model, opts Options) (*Generator, error) {
	prompts, err := promptsFor(opts.Language)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "docs"
	}
	return &Generator{model: model, opts: opts, prompts: prompts}, nil
}

// ProcessFile documents a single specification file. A failed tag or
// endpoint aborts only that one output file.
func (g *Generator) ProcessFile(ctx context.Context, path string) error {
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

	if err := writeIndex(dir, doc, grouped, ""); err != nil {
		return err
	}
	internal.Logf("documentation for %q created in %s", doc.Title(), dir)
	return nil
}

// ProcessDirectory documents every spec file in a directory. A failed file is
// logged and the next one is processed.
func (g *Generator) ProcessDirectory(ctx context.Context, dir string) error {
	return processDirectory(ctx, g, dir)
}

func (g *Generator) endpointDoc(ctx context.Context, doc *openapi.Document, detail *openapi.EndpointDetail) (string, error) {
	op := doc.Operation(detail.Path, detail.Method)
	opJSON, err := json.MarshalIndent(op, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding operation: %w", err)
	}

	prompt, err := render(g.prompts.endpoint, endpointPromptData{
		Path:             detail.Path,
		Method:           detail.Method,
		Tags:             strings.Join(detail.Tags, ", "),
		OperationDetails: string(opJSON),
		Components:       schemaNameSummary(doc, 10),
		Security:         securitySummary(detail),
	})
	if err != nil {
		return "", err
	}

	return g.model.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func (g *Generator) tagDoc(ctx context.Context, doc *openapi.Document, tag string, endpoints []*openapi.EndpointDetail) (string, error) {
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

// schemaNameSummary lists up to limit schema names from the components
// section.
func schemaNameSummary(doc *openapi.Document, limit int) string {
	schemas := doc.Schemas()
	if len(schemas) == 0 {
		return "none"
	}
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString("- " + name + "\n")
	}
	return sb.String()
}

func securitySummary(detail *openapi.EndpointDetail) string {
	if len(detail.Security) == 0 {
		return "no authentication required"
	}
	return strings.Join(detail.Security, ", ")
}

func processDirectory(ctx context.Context, gen DocGenerator, dir string) error {
	files, err := specFiles(dir)
	if err != nil {
		return fmt.Errorf("listing specs in %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no OpenAPI files found in %s", dir)
	}

	internal.Logf("found %d spec files in %s", len(files), dir)
	for _, file := range files {
		internal.Logf("processing %s", file)
		if err := gen.ProcessFile(ctx, file); err != nil {
			internal.Errorf("processing %s: %v", file, err)
		}
	}
	return nil
}
