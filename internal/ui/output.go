package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const summaryWidth = 60

// ResultCountText is the heading above the cards, e.g. "12 features found".
func ResultCountText(total int) string {
	return feature.Plural(total, "feature") + " found"
}

// ShowingText is the footer under the cards, e.g. "Showing 18 of 40 features".
func ShowingText(visible, total int) string {
	return fmt.Sprintf("Showing %d of %d features", visible, total)
}

const emptyStateText = "No features found. Try adjusting your search or filters."

// CardTitle is the first line of a card.
func CardTitle(f feature.Feature) string {
	return f.Name
}

// CardDescription is the card body. Compact cards carry the cleaned
// description only; full cards add the byline and the commands badge.
func CardDescription(f feature.Feature, compact bool) string {
	desc := feature.CleanDescription(f.Description)
	if compact {
		return desc
	}

	parts := make([]string, 0, 3)
	if by := feature.FormatAuthors(f.Authors); by != "" {
		parts = append(parts, "by "+by)
	}
	if desc != "" {
		parts = append(parts, desc)
	}
	if badge := feature.CommandsBadge(f); badge != "" {
		parts = append(parts, badge)
	}
	return strings.Join(parts, " · ")
}

// FormatFeatureList writes one card per feature as plain text.
func FormatFeatureList(w io.Writer, features []feature.Feature, compact bool) {
	if len(features) == 0 {
		fmt.Fprintln(w, emptyStateText)
		return
	}
	for _, f := range features {
		if compact {
			fmt.Fprintf(w, "%s  %s\n", f.Name, feature.Truncate(CardDescription(f, true), summaryWidth))
			continue
		}
		fmt.Fprintln(w, f.Name)
		if body := CardDescription(f, false); body != "" {
			fmt.Fprintf(w, "  %s\n", body)
		}
		fmt.Fprintf(w, "  %s\n", feature.AvailabilityText(f))
	}
}

// FormatFeatureTable renders features as a table with one row each.
func FormatFeatureTable(w io.Writer, features []feature.Feature) {
	if len(features) == 0 {
		fmt.Fprintln(w, emptyStateText)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Authors", "Tags", "Availability", "Commands"})
	for _, f := range features {
		t.AppendRow(table.Row{
			f.Name,
			feature.FormatAuthors(f.Authors),
			strings.Join(f.Tags, ", "),
			feature.AvailabilityText(f),
			len(f.Commands),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// FormatPage writes the result count, the cards and the reveal footer.
func FormatPage(w io.Writer, page catalog.Page, asTable bool) {
	fmt.Fprintln(w, ResultCountText(page.Total))
	fmt.Fprintln(w)
	if asTable {
		FormatFeatureTable(w, page.Features)
	} else {
		FormatFeatureList(w, page.Features, page.Compact)
	}
	if page.Total > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ShowingText(page.Visible, page.Total))
	}
}

// FormatFeatureFull writes a feature's detail document rendered with the
// given glamour style.
func FormatFeatureFull(w io.Writer, f feature.Feature, width int, markdownStyle string) {
	fmt.Fprintln(w, RenderMarkdownWithStyle(FeatureMarkdown(f), width, markdownStyle))
}

// FormatJSON writes any value as indented JSON.
func FormatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FeatureSummary is the trimmed JSON shape used by tool output.
type FeatureSummary struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	Authors      string   `json:"authors,omitempty"`
	Tags         []string `json:"tags"`
	Availability string   `json:"availability"`
	Commands     int      `json:"commands"`
}

// ToSummaries converts features for compact JSON output.
func ToSummaries(features []feature.Feature) []FeatureSummary {
	out := make([]FeatureSummary, len(features))
	for i, f := range features {
		tags := f.Tags
		if tags == nil {
			tags = []string{}
		}
		out[i] = FeatureSummary{
			Name:         f.Name,
			Summary:      feature.Truncate(feature.CleanDescription(f.Description), summaryWidth*2),
			Authors:      feature.FormatAuthors(f.Authors),
			Tags:         tags,
			Availability: feature.AvailabilityText(f),
			Commands:     len(f.Commands),
		}
	}
	return out
}
