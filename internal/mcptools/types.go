package mcptools

// SearchInput is the input schema for the search_features MCP tool.
type SearchInput struct {
	Query string `json:"query" jsonschema-description:"Text matched against feature names and author names"`
	Limit int    `json:"limit,omitempty" jsonschema-description:"Maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_features MCP tool.
type SearchOutput struct {
	Total    int             `json:"total"`
	Features []FeatureResult `json:"features"`
}

// FilterInput is the input schema for the filter_features MCP tool. It
// mirrors the catalog page query string.
type FilterInput struct {
	Search   string `json:"search,omitempty" jsonschema-description:"Name or author substring"`
	Source   string `json:"source,omitempty" jsonschema-description:"Category: all, visual or macros"`
	Platform string `json:"platform,omitempty" jsonschema-description:"Platform: all, desktop or web (recorded, not applied)"`
	Commands bool   `json:"commands,omitempty" jsonschema-description:"Only features with commands (recorded, not applied)"`
	Count    int    `json:"count,omitempty" jsonschema-description:"Reveal at least this many results; pages grow by 9 from 18"`
}

// FilterOutput is the output schema for the filter_features MCP tool.
type FilterOutput struct {
	Total    int             `json:"total"`
	Visible  int             `json:"visible"`
	HasMore  bool            `json:"has_more"`
	ShareURL string          `json:"share_url"`
	Features []FeatureResult `json:"features"`
}

// GetFeatureInput is the input schema for the get_feature MCP tool.
type GetFeatureInput struct {
	Name string `json:"name" jsonschema-description:"Exact feature name, case-insensitive"`
}

// GetFeatureOutput is the output schema for the get_feature MCP tool.
type GetFeatureOutput struct {
	Feature  FeatureResult `json:"feature"`
	Markdown string        `json:"markdown"`
}

// FeatureResult is the common output format for feature tools.
type FeatureResult struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	Authors      string   `json:"authors,omitempty"`
	Tags         []string `json:"tags"`
	Availability string   `json:"availability"`
	Commands     []string `json:"commands,omitempty"`
}
