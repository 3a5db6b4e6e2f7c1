package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/feature"
)

func TestResultCountText(t *testing.T) {
	if got := ResultCountText(1); got != "1 feature found" {
		t.Errorf("one = %q", got)
	}
	if got := ResultCountText(0); got != "0 features found" {
		t.Errorf("zero = %q", got)
	}
}

func TestFormatFeatureListEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatFeatureList(&buf, nil, true)
	if !strings.Contains(buf.String(), "No features found") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestFormatFeatureListLayouts(t *testing.T) {
	features := makeFeatures(2)

	var compact, full bytes.Buffer
	FormatFeatureList(&compact, features, true)
	FormatFeatureList(&full, features, false)

	if got := countLines(strings.TrimRight(compact.String(), "\n")); got != 2 {
		t.Errorf("compact should print one line per feature, got %d", got)
	}
	if !strings.Contains(full.String(), "by thor · Does a thing") {
		t.Errorf("full layout missing byline:\n%s", full.String())
	}
	if !strings.Contains(full.String(), "Available on all platforms") {
		t.Errorf("full layout missing availability:\n%s", full.String())
	}
}

func TestFormatFeatureTable(t *testing.T) {
	var buf bytes.Buffer
	FormatFeatureTable(&buf, []feature.Feature{{
		Name:     "PingCheck",
		Tags:     []string{"utility", "combat"},
		Authors:  []feature.Author{{Name: "thor"}, {Name: "ozas"}},
		Commands: []feature.Command{{Name: "ping"}},
	}})

	out := buf.String()
	for _, want := range []string{"NAME", "PingCheck", "thor & ozas", "utility, combat", "Available on all platforms"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatPage(t *testing.T) {
	page := catalog.Page{Total: 40, Visible: 18, HasMore: true, Compact: true, Features: makeFeatures(18)}

	var buf bytes.Buffer
	FormatPage(&buf, page, false)
	out := buf.String()
	if !strings.HasPrefix(out, "40 features found\n") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Showing 18 of 40 features") {
		t.Errorf("missing footer:\n%s", out)
	}
}

func TestFormatPageEmptyHasNoFooter(t *testing.T) {
	var buf bytes.Buffer
	FormatPage(&buf, catalog.Page{Features: []feature.Feature{}}, false)
	if strings.Contains(buf.String(), "Showing") {
		t.Errorf("empty page should not print a footer:\n%s", buf.String())
	}
}

func TestToSummariesJSON(t *testing.T) {
	summaries := ToSummaries([]feature.Feature{{Name: "Bare"}})

	var buf bytes.Buffer
	if err := FormatJSON(&buf, summaries); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0]["name"] != "Bare" {
		t.Errorf("name = %v", decoded[0]["name"])
	}
	if _, ok := decoded[0]["authors"]; ok {
		t.Error("empty authors should be omitted")
	}
	if tags, ok := decoded[0]["tags"].([]any); !ok || len(tags) != 0 {
		t.Errorf("tags should be an empty array, got %v", decoded[0]["tags"])
	}
}
