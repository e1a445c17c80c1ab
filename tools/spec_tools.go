package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

func registerSpecTools(s *server.MCPServer, store *openapi.Store) {
	// list_specs
	s.AddTool(
		mcp.NewTool("list_specs",
			mcp.WithDescription("List all loaded OpenAPI specifications with their titles and endpoint counts"),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListSpecs(ctx, store)
		},
	)

	// list_endpoints
	s.AddTool(
		mcp.NewTool("list_endpoints",
			mcp.WithDescription("List API endpoints for a spec, optionally filtered by tag or HTTP method"),
			mcp.WithString("spec", mcp.Required(), mcp.Description("Spec name as configured")),
			mcp.WithString("tag", mcp.Description("Filter by API tag/category")),
			mcp.WithString("method", mcp.Description("Filter by HTTP method (GET, POST, PUT, DELETE)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			specName := mcp.ParseString(req, "spec", "")
			tag := mcp.ParseString(req, "tag", "")
			method := strings.ToUpper(mcp.ParseString(req, "method", ""))
			return handleListEndpoints(ctx, store, specName, tag, method)
		},
	)

	// search_api
	s.AddTool(
		mcp.NewTool("search_api",
			mcp.WithDescription("Full-text search across all loaded specs. Searches endpoint paths, summaries, descriptions, and tags."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
			mcp.WithString("spec", mcp.Description("Limit search to a specific spec")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			query := mcp.ParseString(req, "query", "")
			specName := mcp.ParseString(req, "spec", "")
			return handleSearchAPI(ctx, store, query, specName)
		},
	)

	// get_endpoint_details
	s.AddTool(
		mcp.NewTool("get_endpoint_details",
			mcp.WithDescription("Get full details for a specific API endpoint including parameters, request body schema, and response descriptions"),
			mcp.WithString("spec", mcp.Required(), mcp.Description("Spec name")),
			mcp.WithString("path", mcp.Required(), mcp.Description("Endpoint path (e.g. /pets)")),
			mcp.WithString("method", mcp.Description("HTTP method (defaults to GET)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			specName := mcp.ParseString(req, "spec", "")
			path := mcp.ParseString(req, "path", "")
			method := strings.ToUpper(mcp.ParseString(req, "method", "GET"))
			return handleGetEndpointDetails(ctx, store, specName, path, method)
		},
	)

	// get_statistics
	s.AddTool(
		mcp.NewTool("get_statistics",
			mcp.WithDescription("Get aggregate statistics for a spec: endpoint, method, tag, and schema counts"),
			mcp.WithString("spec", mcp.Required(), mcp.Description("Spec name")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			specName := mcp.ParseString(req, "spec", "")
			return handleGetStatistics(ctx, store, specName)
		},
	)

	// resolve_ref
	s.AddTool(
		mcp.NewTool("resolve_ref",
			mcp.WithDescription("Dereference a $ref pointer (e.g. #/components/schemas/Pet) against a loaded spec"),
			mcp.WithString("spec", mcp.Required(), mcp.Description("Spec name")),
			mcp.WithString("ref", mcp.Required(), mcp.Description("Local JSON pointer starting with #/")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			specName := mcp.ParseString(req, "spec", "")
			ref := mcp.ParseString(req, "ref", "")
			return handleResolveRef(ctx, store, specName, ref)
		},
	)

	// refresh_specs
	s.AddTool(
		mcp.NewTool("refresh_specs",
			mcp.WithDescription("Force re-fetch and re-parse specs for all sources or a specific one"),
			mcp.WithString("spec", mcp.Description("Spec name to refresh (omit for all)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			specName := mcp.ParseString(req, "spec", "")
			return handleRefreshSpecs(ctx, store, specName)
		},
	)
}

func handleListSpecs(_ context.Context, store *openapi.Store) (*mcp.CallToolResult, error) {
	type specInfo struct {
		Name      string `json:"name"`
		Title     string `json:"title"`
		Version   string `json:"version"`
		Endpoints int    `json:"endpoints"`
	}

	var specs []specInfo
	for _, name := range store.Names() {
		idx := store.Index(name)
		if idx == nil {
			continue
		}
		specs = append(specs, specInfo{
			Name:      name,
			Title:     idx.Title,
			Version:   idx.Version,
			Endpoints: idx.Count(),
		})
	}

	data, _ := json.MarshalIndent(specs, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleListEndpoints(_ context.Context, store *openapi.Store, specName, tag, method string) (*mcp.CallToolResult, error) {
	if specName == "" {
		return mcp.NewToolResultError("spec is required"), nil
	}

	idx := store.Index(specName)
	if idx == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no spec loaded for %q, try refresh_specs first", specName)), nil
	}

	endpoints := idx.Filter(tag, method)
	if len(endpoints) == 0 {
		return mcp.NewToolResultText("No endpoints match the given filters."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s API Endpoints (%d)\n\n", specName, len(endpoints)))

	// Group by tag
	tagMap := make(map[string][]openapi.EndpointSummary)
	for _, ep := range endpoints {
		t := ep.Tag
		if t == "" {
			t = "untagged"
		}
		tagMap[t] = append(tagMap[t], ep)
	}

	tags := make([]string, 0, len(tagMap))
	for t := range tagMap {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("## %s\n", t))
		for _, ep := range tagMap[t] {
			sb.WriteString(fmt.Sprintf("- %s %s: %s\n", ep.Method, ep.Path, ep.Summary))
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleSearchAPI(_ context.Context, store *openapi.Store, query, specName string) (*mcp.CallToolResult, error) {
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	results := store.Search(query, specName)
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Search results for %q (%d matches)\n\n", query, len(results)))
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("**[%s]** %s %s\n", r.Source, r.Method, r.Path))
		if r.Summary != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", r.Summary))
		}
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func handleGetEndpointDetails(_ context.Context, store *openapi.Store, specName, path, method string) (*mcp.CallToolResult, error) {
	if specName == "" || path == "" {
		return mcp.NewToolResultError("spec and path are required"), nil
	}

	idx := store.Index(specName)
	if idx == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no spec loaded for %q", specName)), nil
	}

	detail, err := idx.GetDetail(path, method)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleGetStatistics(_ context.Context, store *openapi.Store, specName string) (*mcp.CallToolResult, error) {
	if specName == "" {
		return mcp.NewToolResultError("spec is required"), nil
	}

	idx := store.Index(specName)
	if idx == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no spec loaded for %q", specName)), nil
	}

	data, _ := json.MarshalIndent(idx.Stats(), "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleResolveRef(_ context.Context, store *openapi.Store, specName, ref string) (*mcp.CallToolResult, error) {
	if specName == "" || ref == "" {
		return mcp.NewToolResultError("spec and ref are required"), nil
	}

	doc := store.Document(specName)
	if doc == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no spec loaded for %q", specName)), nil
	}

	resolved, err := doc.Resolve(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(resolved, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleRefreshSpecs(ctx context.Context, store *openapi.Store, specName string) (*mcp.CallToolResult, error) {
	if specName != "" {
		if err := store.Refresh(ctx, specName); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to refresh %s: %v", specName, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Refreshed spec %s", specName)), nil
	}

	errors := store.RefreshAll(ctx)
	if len(errors) > 0 {
		var sb strings.Builder
		sb.WriteString("Refresh completed with errors:\n")
		for name, err := range errors {
			sb.WriteString(fmt.Sprintf("- %s: %v\n", name, err))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	return mcp.NewToolResultText("All specs refreshed successfully"), nil
}
