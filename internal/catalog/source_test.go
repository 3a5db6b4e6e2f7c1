package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const catalogBody = `[
	{"name":"Zeta","description":"Last one.","tags":[],"authors":[],"dependencies":[],"hasPatches":false,
	 "hasCommands":false,"commands":[],"required":false,"enabledByDefault":false,"filePath":"src/zeta.ts","isModified":false},
	{"name":"Alpha","description":"First!","tags":["visual"],"authors":[{"name":"thor","id":"848339671629299742"}],
	 "dependencies":["CommandsAPI"],"hasPatches":true,"hasCommands":true,"commands":[{"name":"alpha","description":"run"}],
	 "required":true,"enabledByDefault":true,"target":"desktop","filePath":"src/alpha.ts","isModified":true}
]`

func TestHTTPSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/features.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogBody))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL + "/features.json")
	src.Client = server.Client()

	features, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(features))
	}
	alpha := features[1]
	if alpha.Name != "Alpha" || !alpha.IsModified || alpha.Target != "desktop" || alpha.Dependencies[0] != "CommandsAPI" {
		t.Errorf("descriptor not decoded intact: %+v", alpha)
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	src := &HTTPSource{URL: server.URL, Client: server.Client()}
	_, err := src.Fetch(context.Background())

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fe.Status != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", fe.Status)
	}
	if IsParseError(err) {
		t.Error("status failure must not be a parse error")
	}
}

func TestHTTPSourceParseError(t *testing.T) {
	bodies := []string{`{"name":"not a list"}`, `[{"name": 42}]`, `<html>`, ``, `null`}
	for _, body := range bodies {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		src := &HTTPSource{URL: server.URL, Client: server.Client()}
		_, err := src.Fetch(context.Background())
		server.Close()

		if !IsParseError(err) {
			t.Errorf("body %q: expected *ParseError, got %v", body, err)
		}
	}
}

func TestHTTPSourceTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := (&HTTPSource{URL: url}).Fetch(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != 0 {
		t.Fatalf("expected transport *FetchError with status 0, got %v", err)
	}
}

func TestDecodeRejectsUnnamedDescriptors(t *testing.T) {
	for _, body := range []string{`[null]`, `[{}]`, `[{"name":"Ping"},{"name":"  ","tags":[]}]`} {
		_, err := Decode([]byte(body))
		if !IsParseError(err) {
			t.Errorf("body %q: expected *ParseError, got %v", body, err)
		}
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	features, err := Decode([]byte(" [] "))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if features == nil || len(features) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", features)
	}
}
