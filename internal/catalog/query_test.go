package catalog

import (
	"net/url"
	"testing"
)

func TestQueryRoundTrip(t *testing.T) {
	in, _ := url.ParseQuery("search=foo&source=visual")
	s := NewState()
	ParseQuery(in, &s)

	if s.SearchQuery != "foo" || s.Category != CategoryVisual {
		t.Fatalf("seeded state = %+v", s)
	}

	out := EncodeQuery(s)
	if out.Encode() != in.Encode() {
		t.Errorf("round trip = %q, want %q", out.Encode(), in.Encode())
	}
}

func TestEncodeQueryOmitsDefaults(t *testing.T) {
	if got := EncodeQuery(NewState()).Encode(); got != "" {
		t.Errorf("default state encodes to %q, want empty", got)
	}

	s := NewState()
	s.Category = CategoryMacros
	if got := EncodeQuery(s).Encode(); got != "source=macros" {
		t.Errorf("macros encodes to %q", got)
	}
}

func TestParseQuerySeedsReadOnlyParams(t *testing.T) {
	s := NewState()
	if err := ParseRawQuery("?platform=web&commands=true&source=bogus", &s); err != nil {
		t.Fatalf("ParseRawQuery: %v", err)
	}
	if s.Platform != PlatformWeb || !s.RequireCommands {
		t.Errorf("platform/commands not seeded: %+v", s)
	}
	if s.Category != CategoryAll {
		t.Errorf("unknown source should fall back to all, got %q", s.Category)
	}
	if got := EncodeQuery(s).Encode(); got != "" {
		t.Errorf("platform/commands must not be written back, got %q", got)
	}
}

func TestShareURL(t *testing.T) {
	s := NewState()
	s.SearchQuery = "dash hud"
	got, err := ShareURL("http://localhost:3000/features?old=1", s)
	if err != nil {
		t.Fatalf("ShareURL: %v", err)
	}
	if got != "http://localhost:3000/features?search=dash+hud" {
		t.Errorf("ShareURL = %q", got)
	}
}

func TestCategoryNext(t *testing.T) {
	c := CategoryAll
	seen := []Category{c}
	for i := 0; i < 3; i++ {
		c = c.Next()
		seen = append(seen, c)
	}
	want := []Category{CategoryAll, CategoryVisual, CategoryMacros, CategoryAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
}
