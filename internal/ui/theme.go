package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/featurectl/internal/config"
)

// Theme holds resolved lipgloss colors for the catalog browser.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

const defaultPreset = "default-dark"

var presets = map[string]Theme{
	"default-dark": {
		Primary:       lipgloss.Color("15"),
		Secondary:     lipgloss.Color("243"),
		Accent:        lipgloss.Color("33"),
		Muted:         lipgloss.Color("241"),
		Danger:        lipgloss.Color("9"),
		Background:    lipgloss.Color("235"),
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary:       lipgloss.Color("0"),
		Secondary:     lipgloss.Color("240"),
		Accent:        lipgloss.Color("27"),
		Muted:         lipgloss.Color("245"),
		Danger:        lipgloss.Color("1"),
		Background:    lipgloss.Color("254"),
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary:       lipgloss.Color("#F8F8F2"),
		Secondary:     lipgloss.Color("#6272A4"),
		Accent:        lipgloss.Color("#BD93F9"),
		Muted:         lipgloss.Color("#6272A4"),
		Danger:        lipgloss.Color("#FF5555"),
		Background:    lipgloss.Color("#282A36"),
		MarkdownStyle: "dark",
	},
	"catppuccin-mocha": {
		Primary:       lipgloss.Color("#CDD6F4"),
		Secondary:     lipgloss.Color("#585B70"),
		Accent:        lipgloss.Color("#CBA6F7"),
		Muted:         lipgloss.Color("#6C7086"),
		Danger:        lipgloss.Color("#F38BA8"),
		Background:    lipgloss.Color("#1E1E2E"),
		MarkdownStyle: "dark",
	},
	"catppuccin-latte": {
		Primary:       lipgloss.Color("#4C4F69"),
		Secondary:     lipgloss.Color("#9CA0B0"),
		Accent:        lipgloss.Color("#8839EF"),
		Muted:         lipgloss.Color("#9CA0B0"),
		Danger:        lipgloss.Color("#D20F39"),
		Background:    lipgloss.Color("#EFF1F5"),
		MarkdownStyle: "light",
	},
	"gruvbox-dark": {
		Primary:       lipgloss.Color("#EBDBB2"),
		Secondary:     lipgloss.Color("#665C54"),
		Accent:        lipgloss.Color("#FABD2F"),
		Muted:         lipgloss.Color("#928374"),
		Danger:        lipgloss.Color("#FB4934"),
		Background:    lipgloss.Color("#282828"),
		MarkdownStyle: "dark",
	},
}

// PresetNames lists the built-in presets in a stable order.
func PresetNames() []string {
	return []string{"default-dark", "default-light", "dracula", "catppuccin-mocha", "catppuccin-latte", "gruvbox-dark"}
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides. Unknown presets fall back to
// default-dark.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	override := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	override(&theme.Primary, cfg.Primary)
	override(&theme.Secondary, cfg.Secondary)
	override(&theme.Accent, cfg.Accent)
	override(&theme.Muted, cfg.Muted)
	override(&theme.Danger, cfg.Danger)
	override(&theme.Background, cfg.Background)
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}

	return theme
}

func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// HelpStyle is used for key hints and the footer.
func (t Theme) HelpStyle() lipgloss.Style {
	return t.base().Foreground(t.Muted)
}

// HeaderStyle is used for the page title and the result count.
func (t Theme) HeaderStyle() lipgloss.Style {
	return t.base().Bold(true).Foreground(t.Primary)
}

// AccentStyle highlights the active category and focused input.
func (t Theme) AccentStyle() lipgloss.Style {
	return t.base().Foreground(t.Accent)
}

// DangerStyle renders load errors.
func (t Theme) DangerStyle() lipgloss.Style {
	return t.base().Foreground(t.Danger)
}

// BadgeStyle renders the "N commands available" badge on a card.
func (t Theme) BadgeStyle() lipgloss.Style {
	return t.base().Foreground(t.Accent).Italic(true)
}

// BorderStyle returns a rounded border in the secondary color.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.base().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background).
		Foreground(t.Primary)
}

// ViewPaneStyle is the plain themed pane used by the detail view.
func (t Theme) ViewPaneStyle() lipgloss.Style {
	return t.base().Foreground(t.Primary)
}

// bgEscapeCode returns the raw ANSI sequence that selects the theme
// background, for use with terminal control codes like \x1b[K.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int
		fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen pads every line to termWidth, centering content of
// contentWidth, and fills the screen down to termHeight with the theme
// background. Each line also ends in \x1b[K so the background reaches the
// right edge even when lipgloss.Width is off by a cell.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	bgPad := t.base()
	clearEOL := t.bgEscapeCode() + "\x1b[K"

	leftPad := 0
	if contentWidth > 0 && contentWidth < termWidth {
		leftPad = (termWidth - contentWidth) / 2
	}
	leftStr := ""
	if leftPad > 0 {
		leftStr = bgPad.Render(strings.Repeat(" ", leftPad))
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		rightPad := max(termWidth-leftPad-lipgloss.Width(line), 0)

		var b strings.Builder
		b.WriteString(leftStr)
		b.WriteString(line)
		if rightPad > 0 {
			b.WriteString(bgPad.Render(strings.Repeat(" ", rightPad)))
		}
		b.WriteString(clearEOL)
		lines[i] = b.String()
	}

	emptyLine := bgPad.Render(strings.Repeat(" ", termWidth)) + clearEOL
	for len(lines) < termHeight {
		lines = append(lines, emptyLine)
	}

	return strings.Join(lines[:termHeight], "\n")
}

// NewList creates a list.Model styled from the theme. Built-in filtering
// is disabled; the catalog engine owns search.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.ListDelegate(), width, height)
	l.Styles = t.ListStyles()
	l.SetFilteringEnabled(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

// ListDelegate returns the card delegate: title is the feature name,
// description the byline and summary.
func (t Theme) ListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = t.base().
		Foreground(t.Primary).
		Padding(0, 0, 0, 2)
	d.Styles.NormalDesc = d.Styles.NormalTitle.
		Foreground(t.Muted)
	d.Styles.SelectedTitle = t.base().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		BorderBackground(t.Background).
		Foreground(t.Accent).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.
		Foreground(t.Secondary)
	d.Styles.DimmedTitle = t.base().
		Foreground(t.Muted).
		Padding(0, 0, 0, 2)
	d.Styles.DimmedDesc = d.Styles.DimmedTitle
	return d
}

// ListStyles returns the chrome around the list.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = t.HeaderStyle()
	s.TitleBar = t.base()
	s.PaginationStyle = t.HelpStyle()
	s.HelpStyle = t.HelpStyle()
	s.ActivePaginationDot = t.AccentStyle()
	s.InactivePaginationDot = t.HelpStyle()
	s.NoItems = t.HelpStyle()
	return s
}

// FullScreenStyle sizes a themed block to the whole terminal.
func (t Theme) FullScreenStyle(width, height int) lipgloss.Style {
	return t.ViewPaneStyle().Width(width).Height(height)
}

// ClearLineEnds appends a themed erase-to-end-of-line to every line, for
// output from lipgloss.Place that may stop short of the terminal edge.
func (t Theme) ClearLineEnds(content string) string {
	clearEOL := t.bgEscapeCode() + "\x1b[K"
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = line + clearEOL
	}
	return strings.Join(lines, "\n")
}
