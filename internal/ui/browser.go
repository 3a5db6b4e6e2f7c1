package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/feature"
)

type browserScreen int

const (
	screenCatalog browserScreen = iota
	screenDetail
)

const (
	headerHeight = 4 // title, categories, search, blank
	footerHeight = 3 // reveal status, share link, key hints

	// growRows is how close to the last card the cursor gets before the
	// next page is revealed; the row counterpart of the pixel threshold.
	growRows = 3

	maxSearchLength = 100
)

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth int   // maximum content width (0 = no limit)
	Theme    Theme // resolved theme
}

// featureItem implements list.Item for a catalog card.
type featureItem struct {
	feature feature.Feature
	compact bool
}

func (i featureItem) Title() string       { return CardTitle(i.feature) }
func (i featureItem) Description() string { return CardDescription(i.feature, i.compact) }
func (i featureItem) FilterValue() string { return i.feature.Name }

// fetchDoneMsg carries a finished catalog read back to the owning goroutine.
type fetchDoneMsg struct {
	res catalog.FetchResult
}

func fetchCmd(req catalog.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{res: req.Run()}
	}
}

type browserModel struct {
	engine *catalog.Engine
	cfg    TUIConfig

	// snap is shared by every copy of the model and kept current by the
	// engine's change subscription.
	snap *catalog.Snapshot

	screen     browserScreen
	search     textinput.Model
	searching  bool
	list       list.Model
	viewport   viewport.Model
	spinner    spinner.Model
	detail     feature.Feature
	helpActive bool

	pending tea.Cmd
	ready   bool
	width   int
	height  int
}

// newBrowserModel mounts engine and returns a model whose Init performs the
// first fetch.
func newBrowserModel(ctx context.Context, engine *catalog.Engine, cfg TUIConfig) browserModel {
	snap := &catalog.Snapshot{}
	engine.OnStateChange(func(s catalog.Snapshot) { *snap = s })
	req := engine.Mount(ctx)
	*snap = engine.Snapshot()

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search features or authors"
	search.CharLimit = maxSearchLength
	search.PromptStyle = cfg.Theme.AccentStyle()
	search.TextStyle = cfg.Theme.ViewPaneStyle()
	search.PlaceholderStyle = cfg.Theme.HelpStyle()
	search.SetValue(snap.State.SearchQuery)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.AccentStyle()

	return browserModel{
		engine:  engine,
		cfg:     cfg,
		snap:    snap,
		search:  search,
		list:    cfg.Theme.NewList(nil, 0, 0),
		spinner: sp,
		pending: fetchCmd(req),
	}
}

func (m browserModel) Init() tea.Cmd {
	return tea.Batch(m.pending, m.spinner.Tick)
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case fetchDoneMsg:
		if m.engine.Resolve(msg.res) {
			m.syncList(true)
		}
		return m, nil

	case spinner.TickMsg:
		if m.snap.Phase != catalog.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if m.helpActive {
			if s := msg.String(); s == "?" || s == "esc" || s == "q" {
				m.helpActive = false
			}
			return m, nil
		}
		if m.screen == screenDetail {
			return m.updateDetail(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateCatalog(msg)
	}

	if m.screen == screenDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m browserModel) quit() (tea.Model, tea.Cmd) {
	m.engine.Unmount()
	return m, tea.Quit
}

func (m browserModel) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.helpActive = true
		return m, nil
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "tab":
		m.engine.SetCategoryFilter(m.snap.State.Category.Next())
		m.syncList(true)
		return m, nil
	case "c":
		m.engine.SetCompactDisplay(!m.snap.State.CompactDisplay)
		m.syncList(false)
		return m, nil
	case "r":
		if m.snap.Phase == catalog.PhaseLoading {
			return m, nil
		}
		req := m.engine.RetryFetch()
		return m, tea.Batch(fetchCmd(req), m.spinner.Tick)
	case "enter":
		if item, ok := m.list.SelectedItem().(featureItem); ok {
			return m.openDetail(item.feature)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.maybeGrow()
	return m, cmd
}

func (m browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.engine.SetSearchQuery(after)
		m.syncList(true)
	}
	return m, cmd
}

func (m browserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "backspace":
		m.screen = screenCatalog
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browserModel) openDetail(f feature.Feature) (tea.Model, tea.Cmd) {
	m.detail = f
	m.screen = screenDetail
	m.layout()
	m.viewport.GotoTop()
	return m, nil
}

// maybeGrow reveals the next page once the cursor is within growRows of
// the last revealed card.
func (m *browserModel) maybeGrow() {
	n := len(m.list.Items())
	if n == 0 || !catalog.NearBottom(1, m.list.Index(), n, growRows) {
		return
	}
	if m.engine.OnScrollThreshold() {
		m.syncList(false)
	}
}

// syncList rebuilds the list items from the latest snapshot.
func (m *browserModel) syncList(resetCursor bool) {
	compact := m.snap.State.CompactDisplay
	items := make([]list.Item, len(m.snap.Visible))
	for i, f := range m.snap.Visible {
		items[i] = featureItem{feature: f, compact: compact}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if resetCursor || idx >= len(items) {
		m.list.ResetSelected()
	}
}

func (m *browserModel) layout() {
	if !m.ready {
		return
	}
	cw := m.contentWidth()
	m.list.SetSize(cw, max(m.height-headerHeight-footerHeight, 1))
	m.search.Width = max(cw-len(m.search.Prompt)-1, 1)

	m.viewport.Width = cw
	m.viewport.Height = max(m.height-2, 1)
	m.viewport.Style = m.cfg.Theme.ViewPaneStyle()
	if m.screen == screenDetail {
		m.viewport.SetContent(RenderMarkdownWithStyle(FeatureMarkdown(m.detail), cw, m.cfg.Theme.MarkdownStyle))
	}
}

func (m browserModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m browserModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.helpActive {
		return m.cfg.Theme.ClearLineEnds(m.helpOverlay())
	}

	theme := m.cfg.Theme
	cw := m.contentWidth()
	var result string

	switch m.screen {
	case screenDetail:
		footer := theme.HelpStyle().Width(cw).Render("↑/↓ scroll • esc back • q quit")
		result = m.viewport.View() + "\n" + footer
	default:
		result = strings.Join([]string{
			m.headerView(cw),
			m.categoryView(cw),
			m.searchView(cw),
			"",
			m.bodyView(cw),
			m.footerView(cw),
		}, "\n")
	}

	return theme.PaintScreen(result, m.width, m.height, cw)
}

func (m browserModel) headerView(width int) string {
	theme := m.cfg.Theme
	title := theme.HeaderStyle().Render("Features")
	if m.snap.Phase != catalog.PhaseReady {
		return lipgloss.NewStyle().Width(width).Background(theme.Background).Render(title)
	}
	count := theme.HelpStyle().Render("  " + ResultCountText(m.snap.Total))
	return lipgloss.NewStyle().Width(width).Background(theme.Background).Render(title + count)
}

func (m browserModel) categoryView(width int) string {
	theme := m.cfg.Theme
	parts := make([]string, 0, len(catalog.Categories)+1)
	for _, c := range catalog.Categories {
		if c == m.snap.State.Category {
			parts = append(parts, theme.AccentStyle().Bold(true).Render("["+c.Label()+"]"))
		} else {
			parts = append(parts, theme.HelpStyle().Render(" "+c.Label()+" "))
		}
	}
	layout := "full"
	if m.snap.State.CompactDisplay {
		layout = "compact"
	}
	parts = append(parts, theme.HelpStyle().Render("   layout: "+layout))
	return lipgloss.NewStyle().Width(width).Background(theme.Background).
		Render(strings.Join(parts, theme.HelpStyle().Render(" ")))
}

func (m browserModel) searchView(width int) string {
	return lipgloss.NewStyle().Width(width).Background(m.cfg.Theme.Background).Render(m.search.View())
}

func (m browserModel) bodyView(width int) string {
	theme := m.cfg.Theme
	height := max(m.height-headerHeight-footerHeight, 1)
	pane := theme.ViewPaneStyle().Width(width).Height(height)

	switch m.snap.Phase {
	case catalog.PhaseIdle, catalog.PhaseLoading:
		return pane.Render(m.spinner.View() + theme.HelpStyle().Render(" Loading features..."))
	case catalog.PhaseFailed:
		msg := theme.DangerStyle().Render(fmt.Sprintf("Failed to load features: %v", m.snap.Err))
		hint := theme.HelpStyle().Render("Press r to try again.")
		return pane.Render(msg + "\n\n" + hint)
	}
	if m.snap.Total == 0 {
		return pane.Render(theme.HelpStyle().Render(emptyStateText))
	}
	return pane.Render(m.list.View())
}

func (m browserModel) footerView(width int) string {
	help := m.cfg.Theme.HelpStyle().Width(width)

	status := ""
	if m.snap.Phase == catalog.PhaseReady && m.snap.Total > 0 {
		status = ShowingText(len(m.snap.Visible), m.snap.Total)
		if m.snap.HasMore {
			status += " • scroll for more"
		}
	}
	hints := "/ search • tab category • c layout • enter details • ? help • q quit"
	if m.snap.Phase == catalog.PhaseFailed {
		hints = "r retry • " + hints
	}
	return strings.Join([]string{
		help.Render(status),
		help.Render(m.engine.ShareURL()),
		help.Render(hints),
	}, "\n")
}

func (m browserModel) helpOverlay() string {
	help := m.cfg.Theme.BorderStyle().
		Padding(1, 2).
		Width(48).
		Render(`Browse
  ↑/↓        move between features
  ←/→        previous / next page
  enter      show feature details
  esc        back

Filter
  /          search by name or author
  tab        next category
  c          toggle compact layout
  r          reload the catalog

  q          quit     ? close help`)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, help,
		lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
}

// RunTUI mounts engine and runs the interactive catalog browser until the
// user quits or ctx is cancelled.
func RunTUI(ctx context.Context, engine *catalog.Engine, cfg TUIConfig) error {
	m := newBrowserModel(ctx, engine, cfg)
	defer engine.Unmount()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
