package mcptools

import (
	"context"
	"net/url"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/feature"
)

const (
	defaultSearchLimit = 10
	summaryLength      = 160
)

// loadEngine fetches the catalog into a fresh engine seeded from query.
// Tools run without a preference store, so layout preferences stay at
// their defaults. Callers unmount the returned engine.
func loadEngine(ctx context.Context, source catalog.Source, baseURL string, query url.Values) (*catalog.Engine, error) {
	e := catalog.NewEngine(source, nil, catalog.Options{BaseURL: baseURL, Query: query})
	if err := e.Load(ctx); err != nil {
		e.Unmount()
		return nil, err
	}
	return e, nil
}

func toResult(f feature.Feature) FeatureResult {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	var commands []string
	for _, c := range f.Commands {
		commands = append(commands, c.Name)
	}
	return FeatureResult{
		Name:         f.Name,
		Summary:      feature.Truncate(feature.CleanDescription(f.Description), summaryLength),
		Authors:      feature.FormatAuthors(f.Authors),
		Tags:         tags,
		Availability: feature.AvailabilityText(f),
		Commands:     commands,
	}
}

func toResults(features []feature.Feature) []FeatureResult {
	out := make([]FeatureResult, len(features))
	for i, f := range features {
		out[i] = toResult(f)
	}
	return out
}
