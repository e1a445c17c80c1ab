package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/GAKiknadze/swagger-to-docs/openapi"
)

// RegisterAll registers all tools with the MCP server.
func RegisterAll(s *server.MCPServer, store *openapi.Store) {
	registerSpecTools(s, store)
}
