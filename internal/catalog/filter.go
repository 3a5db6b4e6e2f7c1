package catalog

import (
	"slices"
	"strings"

	"github.com/chris-regnier/featurectl/internal/feature"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tags that place a feature in a category.
var (
	visualTags = []string{"visual", "effects", "dashbars"}
	macroTags  = []string{"macro", "combat", "movement"}
)

// Apply runs the search, category and sort stages over raw and returns a new
// slice. raw is never modified. Platform and RequireCommands are carried in
// State but are not predicates yet.
func Apply(raw []feature.Feature, s State) []feature.Feature {
	query := s.NormalizedQuery()

	result := make([]feature.Feature, 0, len(raw))
	for _, f := range raw {
		if !matchesSearch(f, query) {
			continue
		}
		if !matchesCategory(f, s.Category) {
			continue
		}
		result = append(result, f)
	}

	sortByName(result)
	return result
}

// matchesSearch expects query already trimmed and lower-cased.
func matchesSearch(f feature.Feature, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(f.Name), query) {
		return true
	}
	for _, a := range f.Authors {
		if strings.Contains(strings.ToLower(a.Name), query) {
			return true
		}
	}
	return false
}

func matchesCategory(f feature.Feature, c Category) bool {
	switch c {
	case CategoryVisual:
		return f.HasAnyTag(visualTags...)
	case CategoryMacros:
		return f.HasAnyTag(macroTags...)
	default:
		return true
	}
}

// sortByName orders features by name the way a reader expects, so "alpha"
// sorts next to "Alpha" rather than after "Zeta". A collator is not safe for
// concurrent use, so each call builds its own.
func sortByName(features []feature.Feature) {
	c := collate.New(language.English)
	slices.SortStableFunc(features, func(a, b feature.Feature) int {
		return c.CompareString(a.Name, b.Name)
	})
}

// Find returns the feature called name, compared case-insensitively.
func Find(features []feature.Feature, name string) (feature.Feature, bool) {
	name = strings.TrimSpace(name)
	for _, f := range features {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return feature.Feature{}, false
}
