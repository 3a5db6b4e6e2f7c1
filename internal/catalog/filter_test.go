package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/google/go-cmp/cmp"
)

func names(features []feature.Feature) []string {
	out := make([]string, len(features))
	for i, f := range features {
		out[i] = f.Name
	}
	return out
}

func sampleCatalog() []feature.Feature {
	return []feature.Feature{
		{Name: "Zeta", Tags: []string{}},
		{Name: "Alpha", Tags: []string{"visual"}, Authors: []feature.Author{{Name: "thor", ID: "1"}}},
		{Name: "Beta", Tags: []string{"macro"}, Authors: []feature.Author{{Name: "ozas", ID: "2"}}},
		{Name: "dashHud", Tags: []string{"dashbars"}, Authors: []feature.Author{{Name: "aspy", ID: "3"}}},
		{Name: "AutoDodge", Tags: []string{"movement", "combat"}, Authors: []feature.Author{{Name: "drwhofan13", ID: "4"}, {Name: "Thor", ID: "1"}}},
		{Name: "Glow", Tags: []string{"effects"}},
	}
}

func TestApplyVisualScenario(t *testing.T) {
	raw := []feature.Feature{
		{Name: "Zeta", Tags: []string{}},
		{Name: "Alpha", Tags: []string{"visual"}},
		{Name: "Beta", Tags: []string{"macro"}},
	}
	s := NewState()
	s.Category = CategoryVisual

	got := Apply(raw, s)
	if diff := cmp.Diff([]string{"Alpha"}, names(got)); diff != "" {
		t.Errorf("visual filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySortsAfterFiltering(t *testing.T) {
	got := Apply(sampleCatalog(), NewState())
	want := []string{"Alpha", "AutoDodge", "Beta", "dashHud", "Glow", "Zeta"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMacros(t *testing.T) {
	s := NewState()
	s.Category = CategoryMacros
	got := Apply(sampleCatalog(), s)
	if diff := cmp.Diff([]string{"AutoDodge", "Beta"}, names(got)); diff != "" {
		t.Errorf("macros filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyVisualTagFamily(t *testing.T) {
	s := NewState()
	s.Category = CategoryVisual
	got := Apply(sampleCatalog(), s)
	if diff := cmp.Diff([]string{"Alpha", "dashHud", "Glow"}, names(got)); diff != "" {
		t.Errorf("visual family mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySearchByNameAndAuthor(t *testing.T) {
	s := NewState()
	s.SearchQuery = "  THOR "
	got := Apply(sampleCatalog(), s)
	if diff := cmp.Diff([]string{"Alpha", "AutoDodge"}, names(got)); diff != "" {
		t.Errorf("author search mismatch (-want +got):\n%s", diff)
	}

	s.SearchQuery = "dash"
	got = Apply(sampleCatalog(), s)
	if diff := cmp.Diff([]string{"dashHud"}, names(got)); diff != "" {
		t.Errorf("name search mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyWhitespaceQueryKeepsAll(t *testing.T) {
	s := NewState()
	s.SearchQuery = " \t "
	if got := Apply(sampleCatalog(), s); len(got) != len(sampleCatalog()) {
		t.Errorf("expected all %d features, got %d", len(sampleCatalog()), len(got))
	}
}

func TestApplyNoMatchesIsEmpty(t *testing.T) {
	s := NewState()
	s.SearchQuery = "nothing-matches-this"
	got := Apply(sampleCatalog(), s)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
	if got := Apply(nil, NewState()); got == nil || len(got) != 0 {
		t.Errorf("expected empty result for empty catalog, got %#v", got)
	}
}

func TestApplyIgnoresPlatformAndCommands(t *testing.T) {
	s := NewState()
	s.Platform = PlatformWeb
	s.RequireCommands = true
	if got := Apply(sampleCatalog(), s); len(got) != len(sampleCatalog()) {
		t.Errorf("platform/commands must not filter yet, got %d features", len(got))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	raw := sampleCatalog()
	before := names(raw)
	Apply(raw, NewState())
	if diff := cmp.Diff(before, names(raw)); diff != "" {
		t.Errorf("input reordered (-before +after):\n%s", diff)
	}
}

// TestApplyProperties checks subset, ordering, idempotence and match
// guarantees over a spread of generated catalogs and states.
func TestApplyProperties(t *testing.T) {
	tagSets := [][]string{nil, {"visual"}, {"macro"}, {"effects", "combat"}, {"utility"}}
	var raw []feature.Feature
	for i := 0; i < 60; i++ {
		raw = append(raw, feature.Feature{
			Name:    fmt.Sprintf("%c%s%d", 'A'+rune((i*7)%26), []string{"ping", "Hud", "glow", "dodge"}[i%4], i),
			Tags:    tagSets[i%len(tagSets)],
			Authors: []feature.Author{{Name: []string{"thor", "ozas", "aspy"}[i%3]}},
		})
	}

	queries := []string{"", "ping", "HUD", "thor", "zz", " glow "}
	for _, q := range queries {
		for _, c := range Categories {
			s := NewState()
			s.SearchQuery = q
			s.Category = c

			got := Apply(raw, s)

			inInput := map[string]bool{}
			for _, f := range raw {
				inInput[f.Name] = true
			}
			for _, f := range got {
				if !inInput[f.Name] {
					t.Fatalf("q=%q c=%s: %q not in input", q, c, f.Name)
				}
			}

			for i := 1; i < len(got); i++ {
				if sortKeyLess(got[i].Name, got[i-1].Name) {
					t.Fatalf("q=%q c=%s: %q sorted after %q", q, c, got[i].Name, got[i-1].Name)
				}
			}

			if diff := cmp.Diff(names(got), names(Apply(got, s))); diff != "" {
				t.Fatalf("q=%q c=%s: not idempotent:\n%s", q, c, diff)
			}

			nq := strings.ToLower(strings.TrimSpace(q))
			if nq == "" {
				continue
			}
			for _, f := range got {
				if !matchesSearch(f, nq) {
					t.Fatalf("q=%q: %q does not match", q, f.Name)
				}
			}
		}
	}
}

// sortKeyLess compares case-insensitively, which agrees with the collator
// for the ASCII names used above.
func sortKeyLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func TestFind(t *testing.T) {
	f, ok := Find(sampleCatalog(), "  autododge ")
	if !ok || f.Name != "AutoDodge" {
		t.Errorf("Find = %v, %v", f.Name, ok)
	}
	if _, ok := Find(sampleCatalog(), "Auto"); ok {
		t.Error("Find should not match prefixes")
	}
}
