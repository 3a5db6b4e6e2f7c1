package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chris-regnier/featurectl/internal/feature"
	"github.com/chris-regnier/featurectl/internal/logging"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Source produces a full catalog snapshot or fails. There are no partial
// results.
type Source interface {
	Fetch(ctx context.Context) ([]feature.Feature, error)
}

// FetchError reports a catalog response that was not successful. Status is 0
// when no response was received at all.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("fetching catalog from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching catalog from %s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a catalog body that is not a list of descriptors.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing catalog: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

const (
	requestIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	requestIDLength   = 8
)

// HTTPSource reads the catalog from a static JSON endpoint. Client may be nil
// to use http.DefaultClient; its timeouts are the only ones applied.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPSource returns a source for url using http.DefaultClient.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: http.DefaultClient}
}

// Fetch performs one GET against the endpoint.
func (s *HTTPSource) Fetch(ctx context.Context) ([]feature.Feature, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.New("source")
	}
	reqID, _ := gonanoid.Generate(requestIDAlphabet, requestIDLength)
	logger = logger.With("request_id", reqID, "url", s.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("fetching catalog")
	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("catalog request failed", "error", err)
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("catalog request unsuccessful", "status", resp.StatusCode)
		return nil, &FetchError{URL: s.URL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Status: resp.StatusCode, Err: err}
	}

	features, err := Decode(body)
	if err != nil {
		logger.Debug("catalog body rejected", "error", err)
		return nil, err
	}
	logger.Debug("catalog fetched", "features", len(features))
	return features, nil
}

// Decode parses a catalog body. Anything but a JSON array of named
// descriptors is a *ParseError.
func Decode(body []byte) ([]feature.Feature, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ParseError{Err: errors.New("expected a JSON array of features")}
	}
	var features []feature.Feature
	if err := json.Unmarshal(trimmed, &features); err != nil {
		return nil, &ParseError{Err: err}
	}
	for i, f := range features {
		if strings.TrimSpace(f.Name) == "" {
			return nil, &ParseError{Err: fmt.Errorf("feature at index %d has no name", i)}
		}
	}
	if features == nil {
		features = []feature.Feature{}
	}
	return features, nil
}
