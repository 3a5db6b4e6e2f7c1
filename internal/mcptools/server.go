package mcptools

import (
	"context"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// NewFeatureMCPServer creates an in-memory MCP server exposing catalog tools.
// Returns the server and a client transport for connecting to it.
func NewFeatureMCPServer(source catalog.Source, baseURL string) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(source, baseURL)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the read-only catalog tools.
// baseURL is the catalog page used for share links.
func CreateMCPServer(source catalog.Source, baseURL string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "featurectl",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_features",
		Description: "Search catalog features by name or author, sorted by name",
	}, SearchHandler(source, baseURL))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_features",
		Description: "Filter catalog features by search, category and page size, as the catalog page does",
	}, FilterHandler(source, baseURL))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_feature",
		Description: "Get one feature's full description, commands and availability",
	}, GetFeatureHandler(source))

	return server
}
