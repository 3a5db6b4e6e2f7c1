package mcptools

import (
	"context"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchHandler returns the handler function for the search_features MCP tool.
func SearchHandler(source catalog.Source, baseURL string) func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		e, err := loadEngine(ctx, source, baseURL, nil)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		defer e.Unmount()
		e.SetSearchQuery(input.Query)

		matches := e.Filtered()
		if len(matches) > limit {
			matches = matches[:limit]
		}
		return nil, SearchOutput{
			Total:    e.TotalFilteredCount(),
			Features: toResults(matches),
		}, nil
	}
}
