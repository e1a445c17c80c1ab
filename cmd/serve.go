package cmd

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/GAKiknadze/swagger-to-docs/internal"
	"github.com/GAKiknadze/swagger-to-docs/openapi"
	"github.com/GAKiknadze/swagger-to-docs/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the spec analyzer as an MCP server over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Specs) == 0 {
			return fmt.Errorf("no specs configured; add a specs section to the config file")
		}

		store := openapi.NewStore(cfg)
		store.LoadAll(cmd.Context())

		s := server.NewMCPServer(
			"swagger-to-docs",
			version,
			server.WithToolCapabilities(true),
			server.WithInstructions("swagger-to-docs exposes loaded OpenAPI specifications. Use list_specs to see what is loaded, list_endpoints and search_api to explore endpoints, get_endpoint_details for parameters and schemas, get_statistics for aggregate counts, and resolve_ref to dereference $ref pointers."),
		)

		tools.RegisterAll(s, store)

		internal.Logf("starting swagger-to-docs MCP server (stdio), %d specs", len(cfg.Specs))
		if err := server.ServeStdio(s); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

const version = "0.1.0"

func init() {
	rootCmd.AddCommand(serveCmd)
}
