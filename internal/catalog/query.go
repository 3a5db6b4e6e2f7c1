package catalog

import (
	"net/url"
	"strings"
)

// Query parameter names shared with the catalog web page.
const (
	ParamSearch   = "search"
	ParamSource   = "source"
	ParamPlatform = "platform"
	ParamCommands = "commands"
)

// ParseQuery seeds s from URL query values. platform and commands are read
// so shared links keep working, but EncodeQuery never writes them back.
func ParseQuery(v url.Values, s *State) {
	s.SearchQuery = v.Get(ParamSearch)
	s.Category = ParseCategory(v.Get(ParamSource))
	s.Platform = ParsePlatform(v.Get(ParamPlatform))
	s.RequireCommands = v.Get(ParamCommands) == "true"
}

// ParseRawQuery is ParseQuery for an encoded query string, with or without
// the leading "?".
func ParseRawQuery(raw string, s *State) error {
	v, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return err
	}
	ParseQuery(v, s)
	return nil
}

// EncodeQuery serializes the shareable part of s. Defaults are omitted so
// links stay short: no search parameter when the query is empty and no
// source parameter for the all category.
func EncodeQuery(s State) url.Values {
	v := url.Values{}
	if s.SearchQuery != "" {
		v.Set(ParamSearch, s.SearchQuery)
	}
	if s.Category != "" && s.Category != CategoryAll {
		v.Set(ParamSource, string(s.Category))
	}
	return v
}

// ShareURL returns base with the encoded state as its query string.
func ShareURL(base string, s State) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = EncodeQuery(s).Encode()
	return u.String(), nil
}
