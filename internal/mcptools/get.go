package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetFeatureHandler returns the handler function for the get_feature MCP tool.
func GetFeatureHandler(source catalog.Source) func(ctx context.Context, req *mcp.CallToolRequest, input GetFeatureInput) (*mcp.CallToolResult, GetFeatureOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetFeatureInput) (*mcp.CallToolResult, GetFeatureOutput, error) {
		e, err := loadEngine(ctx, source, "", nil)
		if err != nil {
			return nil, GetFeatureOutput{}, err
		}
		defer e.Unmount()

		f, ok := catalog.Find(e.Features(), input.Name)
		if !ok {
			return nil, GetFeatureOutput{}, fmt.Errorf("feature %q not found", input.Name)
		}
		return nil, GetFeatureOutput{
			Feature:  toResult(f),
			Markdown: ui.FeatureMarkdown(f),
		}, nil
	}
}
