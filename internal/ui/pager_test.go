package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/config"
)

func pageText(n int) string {
	var buf bytes.Buffer
	FormatPage(&buf, catalog.Page{Total: n, Visible: n, Features: makeFeatures(n), Compact: true}, false)
	return buf.String()
}

func sizedPager(t *testing.T, content string, maxWidth, w, h int) pagerModel {
	t.Helper()
	m := pagerModel{
		content:  content,
		maxWidth: maxWidth,
		theme:    ResolveTheme(config.ThemeConfig{Preset: "default-dark"}),
	}
	sized, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return sized.(pagerModel)
}

func TestPagerPaintsWholeScreen(t *testing.T) {
	m := sizedPager(t, pageText(5), 60, 100, 30)

	lines := strings.Split(stripANSI(m.View()), "\n")
	if len(lines) != 30 {
		t.Errorf("expected 30 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) < 100 {
			t.Errorf("line %d: expected min width 100, got %d", i, len(line))
		}
	}
	if !strings.Contains(stripANSI(m.View()), "5 features found") {
		t.Error("expected the page header in the pager")
	}
}

func TestPagerFooterTracksScrollPercent(t *testing.T) {
	m := sizedPager(t, pageText(100), 0, 80, 24)

	if !strings.Contains(stripANSI(m.View()), "q quit •   0%") {
		t.Errorf("expected 0%% at the top, got footer:\n%s", lastLine(m.View()))
	}

	for i := 0; i < 10; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
		m = next.(pagerModel)
	}
	if !strings.Contains(stripANSI(m.View()), "100%") {
		t.Errorf("expected 100%% at the bottom, got footer:\n%s", lastLine(m.View()))
	}
	if !strings.Contains(stripANSI(m.View()), "Showing 100 of 100 features") {
		t.Error("expected the page footer to be visible at the bottom")
	}
}

func TestPagerQuitKeys(t *testing.T) {
	m := sizedPager(t, "x", 0, 80, 24)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestPagerNotReadyBeforeSize(t *testing.T) {
	m := pagerModel{content: "x"}
	if m.View() != "Loading..." {
		t.Errorf("unsized view = %q", m.View())
	}
}

func TestOutputOrPageWritesVerbatimToOtherWriters(t *testing.T) {
	theme := ResolveTheme(config.ThemeConfig{})
	content := pageText(30)

	for _, asJSON := range []bool{false, true} {
		var buf bytes.Buffer
		if err := OutputOrPage(&buf, content, asJSON, 80, theme); err != nil {
			t.Fatalf("OutputOrPage(json=%v): %v", asJSON, err)
		}
		if buf.String() != content {
			t.Errorf("json=%v: content was altered", asJSON)
		}
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(stripANSI(s), "\n "), "\n")
	return lines[len(lines)-1]
}
