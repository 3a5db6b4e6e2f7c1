package feature

import (
	"fmt"
	"regexp"
	"strings"
)

// Author credits a contributor on a feature.
type Author struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Command is a chat command contributed by a feature.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Feature is a single catalog descriptor. Values are snapshots of the remote
// catalog and are never modified locally; Name identifies a feature.
type Feature struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Tags             []string  `json:"tags"`
	Authors          []Author  `json:"authors"`
	Dependencies     []string  `json:"dependencies"`
	HasPatches       bool      `json:"hasPatches"`
	HasCommands      bool      `json:"hasCommands"`
	Commands         []Command `json:"commands"`
	Required         bool      `json:"required"`
	EnabledByDefault bool      `json:"enabledByDefault"`
	Target           string    `json:"target,omitempty"`
	FilePath         string    `json:"filePath"`
	IsModified       bool      `json:"isModified"`
}

// Known targets.
const (
	TargetDiscordDesktop = "discordDesktop"
	TargetVesktop        = "vesktop"
	TargetAdrenalin      = "adrenalin"
	TargetDesktop        = "desktop"
	TargetWeb            = "web"
	TargetDev            = "dev"
)

var (
	upperPattern       = regexp.MustCompile(`([A-Z])`)
	punctuationPattern = regexp.MustCompile(`[!.,:;?]+`)
	spacePattern       = regexp.MustCompile(`\s+`)
)

// HasTag reports whether the feature carries tag.
func (f Feature) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the feature carries at least one of tags.
func (f Feature) HasAnyTag(tags ...string) bool {
	for _, t := range tags {
		if f.HasTag(t) {
			return true
		}
	}
	return false
}

// FormatAuthors renders the author byline: "A", "A & B" or "A, B, C".
func FormatAuthors(authors []Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return strings.Join(names, " & ")
	default:
		return strings.Join(names, ", ")
	}
}

// FormatTarget turns a camelCase target into words. An empty target means
// the feature ships everywhere.
func FormatTarget(target string) string {
	if target == "" {
		return "all platforms"
	}
	return strings.TrimSpace(strings.ToLower(upperPattern.ReplaceAllString(target, " $1")))
}

// CleanDescription strips sentence punctuation and collapses whitespace so
// the caller can append its own terminator.
func CleanDescription(text string) string {
	text = punctuationPattern.ReplaceAllString(text, "")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// AvailabilityText describes where the feature can be enabled.
func AvailabilityText(f Feature) string {
	// WebContextMenus is force-enabled by both desktop clients.
	if f.Name == "WebContextMenus" {
		return "Required on vesktop & adrenalin"
	}
	if f.Required {
		return "Required on " + FormatTarget(f.Target)
	}
	return "Available on " + FormatTarget(f.Target)
}

// CommandsBadge returns "N command(s) available", or "" when the feature
// has no commands to advertise.
func CommandsBadge(f Feature) string {
	if !f.HasCommands || len(f.Commands) == 0 {
		return ""
	}
	return Plural(len(f.Commands), "command") + " available"
}

// Truncate shortens s to at most n runes, ending in "…" when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	return string(r[:n-1]) + "…"
}

// Plural formats n with noun, adding an "s" unless n is 1.
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
