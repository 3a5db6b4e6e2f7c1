package cmd

import (
	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the feature
catalog over stdio transport.

Available tools:
  - search_features: Search features by name or author
  - filter_features: Filter by search and category, page by page
  - get_feature: Full details for one feature

Example client config:
  {
    "mcpServers": {
      "featurectl": {
        "command": "/path/to/featurectl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	server := mcptools.CreateMCPServer(newSource(), appConfig.FeaturesPageURL())

	// stdout is reserved for the protocol; logging goes to stderr.
	logging.New("mcp").Info("starting MCP server (stdio transport)",
		"catalog_url", appConfig.CatalogURL,
		"storage", appConfig.Storage,
		"data_dir", appConfig.DataDir,
	)

	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
