package catalog

import "strings"

// Category narrows the catalog to a family of tags.
type Category string

const (
	CategoryAll    Category = "all"
	CategoryVisual Category = "visual"
	CategoryMacros Category = "macros"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryAll, CategoryVisual, CategoryMacros}

// ParseCategory accepts the lower-case category names; anything else is all.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryVisual:
		return CategoryVisual
	case CategoryMacros:
		return CategoryMacros
	default:
		return CategoryAll
	}
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryVisual:
		return "Visual"
	case CategoryMacros:
		return "Macros"
	default:
		return "All"
	}
}

// Next cycles to the following category.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return CategoryAll
}

// Platform is accepted as filter state but is not applied by the pipeline.
type Platform string

const (
	PlatformAll     Platform = "all"
	PlatformDesktop Platform = "desktop"
	PlatformWeb     Platform = "web"
)

// ParsePlatform accepts the lower-case platform names; anything else is all.
func ParsePlatform(s string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformDesktop:
		return PlatformDesktop
	case PlatformWeb:
		return PlatformWeb
	default:
		return PlatformAll
	}
}

// State is the filter state of one catalog view. It lives as long as the
// view and is mutated only by the goroutine that owns the view.
type State struct {
	SearchQuery     string
	Category        Category
	Platform        Platform
	RequireCommands bool
	VisibleCount    int
	CompactDisplay  bool
}

// NewState returns the state a freshly mounted view starts from.
func NewState() State {
	return State{
		Category:       CategoryAll,
		Platform:       PlatformAll,
		VisibleCount:   InitialVisibleCount,
		CompactDisplay: true,
	}
}

// NormalizedQuery is the search query as the pipeline matches it.
func (s State) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(s.SearchQuery))
}
