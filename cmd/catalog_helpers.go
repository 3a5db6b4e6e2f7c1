package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/prefs"
	"github.com/spf13/cobra"
)

const (
	defaultCacheTTL = 10 * time.Minute
	fetchTimeout    = 30 * time.Second
)

// catalogFilters are the flags that mirror the catalog page query string.
type catalogFilters struct {
	query    string
	search   string
	source   string
	platform string
	commands bool
}

var filterFlags = &catalogFilters{}

// register binds the filter flags on cmd. Every command shares the same
// variables.
func (f *catalogFilters) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.query, "query", "", `raw query string, e.g. "search=ping&source=visual"`)
	fl.StringVar(&f.search, "search", "", "match feature or author names")
	fl.StringVar(&f.source, "source", "", "category: all, visual or macros")
	fl.StringVar(&f.platform, "platform", "", "platform: all, desktop or web (recorded, not applied)")
	fl.BoolVar(&f.commands, "commands", false, "require features with commands (recorded, not applied)")
}

// values merges --query with the individual filter flags given to cmd.
// Flags given explicitly win over the same key in --query.
func (f *catalogFilters) values(cmd *cobra.Command) (url.Values, error) {
	q, err := url.ParseQuery(f.query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	set := func(flag, key, value string) {
		if cmd.Flags().Changed(flag) {
			q.Set(key, value)
		}
	}
	set("search", catalog.ParamSearch, f.search)
	set("source", catalog.ParamSource, f.source)
	set("platform", catalog.ParamPlatform, f.platform)
	set("commands", catalog.ParamCommands, strconv.FormatBool(f.commands))
	return q, nil
}

// reset clears the flag values; used between test runs.
func (f *catalogFilters) reset() {
	f.query, f.search, f.source, f.platform, f.commands = "", "", "", "", false
}

func cacheTTL() time.Duration {
	ttl, err := time.ParseDuration(appConfig.CacheTTL)
	if err != nil {
		logging.New("cmd").Warn("invalid cache_ttl, using default", "value", appConfig.CacheTTL, "default", defaultCacheTTL)
		return defaultCacheTTL
	}
	return ttl
}

// newSource returns the configured catalog source with the local snapshot
// cache in front of it.
func newSource() catalog.Source {
	upstream := &catalog.HTTPSource{
		URL:    appConfig.CatalogURL,
		Client: &http.Client{Timeout: fetchTimeout},
	}
	return &catalog.CachedSource{
		Upstream: upstream,
		Cache:    store,
		Key:      appConfig.CatalogURL,
		TTL:      cacheTTL(),
		Refresh:  refreshCache,
	}
}

func newEngine(query url.Values) *catalog.Engine {
	return catalog.NewEngine(newSource(), prefs.NewBridge(store), catalog.Options{
		BaseURL: appConfig.FeaturesPageURL(),
		Query:   query,
	})
}
