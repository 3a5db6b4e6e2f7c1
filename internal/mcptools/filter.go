package mcptools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilterHandler returns the handler function for the filter_features MCP tool.
func FilterHandler(source catalog.Source, baseURL string) func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FilterInput) (*mcp.CallToolResult, FilterOutput, error) {
		e, err := loadEngine(ctx, source, baseURL, input.query())
		if err != nil {
			return nil, FilterOutput{}, err
		}
		defer e.Unmount()
		e.RevealTo(input.Count)

		visible := e.VisibleFeatures()
		return nil, FilterOutput{
			Total:    e.TotalFilteredCount(),
			Visible:  len(visible),
			HasMore:  e.HasMore(),
			ShareURL: e.ShareURL(),
			Features: toResults(visible),
		}, nil
	}
}

func (in FilterInput) query() url.Values {
	q := url.Values{}
	if in.Search != "" {
		q.Set(catalog.ParamSearch, in.Search)
	}
	if in.Source != "" {
		q.Set(catalog.ParamSource, in.Source)
	}
	if in.Platform != "" {
		q.Set(catalog.ParamPlatform, in.Platform)
	}
	if in.Commands {
		q.Set(catalog.ParamCommands, strconv.FormatBool(true))
	}
	return q
}
