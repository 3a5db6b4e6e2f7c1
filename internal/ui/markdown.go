package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/chris-regnier/featurectl/internal/feature"
)

const defaultRenderWidth = 80

// rendererCache keeps one glamour renderer around; building one is slow
// enough to notice on every keypress in the detail view.
var rendererCache struct {
	sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

func markdownRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = defaultRenderWidth
	}
	if style == "" {
		style = "dark"
	}

	rendererCache.Lock()
	defer rendererCache.Unlock()

	if rendererCache.renderer != nil && rendererCache.width == width && rendererCache.style == style {
		return rendererCache.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.renderer = r
	rendererCache.width = width
	rendererCache.style = style
	return r, nil
}

// RenderMarkdownWithStyle renders markdown with the given glamour style.
// The input is returned unchanged if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	r, err := markdownRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, "dark")
}

// FeatureMarkdown builds the markdown document shown by the detail view
// and by "show".
func FeatureMarkdown(f feature.Feature) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.Name)
	if by := feature.FormatAuthors(f.Authors); by != "" {
		fmt.Fprintf(&b, "*by %s*\n\n", by)
	}
	if desc := feature.CleanDescription(f.Description); desc != "" {
		fmt.Fprintf(&b, "%s.\n\n", desc)
	}
	fmt.Fprintf(&b, "**%s**\n\n", feature.AvailabilityText(f))

	if len(f.Tags) > 0 {
		tags := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			tags[i] = "`" + t + "`"
		}
		fmt.Fprintf(&b, "Tags: %s\n\n", strings.Join(tags, " "))
	}
	if len(f.Dependencies) > 0 {
		fmt.Fprintf(&b, "Depends on: %s\n\n", strings.Join(f.Dependencies, ", "))
	}
	if f.EnabledByDefault {
		b.WriteString("Enabled by default.\n\n")
	}

	if badge := feature.CommandsBadge(f); badge != "" {
		fmt.Fprintf(&b, "## Commands\n\n_%s_\n\n", badge)
		for _, c := range f.Commands {
			if c.Description != "" {
				fmt.Fprintf(&b, "- `/%s`: %s\n", c.Name, c.Description)
			} else {
				fmt.Fprintf(&b, "- `/%s`\n", c.Name)
			}
		}
		b.WriteString("\n")
	}

	if f.FilePath != "" {
		fmt.Fprintf(&b, "Source: `%s`\n", f.FilePath)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
