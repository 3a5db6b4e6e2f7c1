package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/chris-regnier/featurectl/internal/prefs"
	"github.com/chris-regnier/featurectl/internal/storage"
	"github.com/chris-regnier/featurectl/internal/ui"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	CatalogURL string        `json:"catalog_url"`
	Backend    string        `json:"backend"`
	DataDir    string        `json:"data_dir"`
	Cached     bool          `json:"cached"`
	Features   int           `json:"features"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Age        time.Duration `json:"age"`
	Fresh      bool          `json:"fresh"`
	Compact    bool          `json:"compact"`
}

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and cache state",
	Long: `Show where the catalog comes from, which storage backend is in use and
how old the cached snapshot is. Nothing is fetched.

Use --format with a Go template for custom output.`,
	Example: `  featurectl status
  featurectl status --json
  featurectl status --format "{{.Features}} features, fresh={{.Fresh}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := buildStatusData(time.Now())
		if err != nil {
			return err
		}
		return statusRun(cmd.OutOrStdout(), data, statusFormat)
	},
}

func buildStatusData(now time.Time) (statusData, error) {
	data := statusData{
		CatalogURL: appConfig.CatalogURL,
		Backend:    appConfig.Storage,
		DataDir:    appConfig.DataDir,
		Compact:    prefs.NewBridge(store).CompactMode(),
	}

	snap, err := store.GetCatalog(appConfig.CatalogURL)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return data, nil
	case err != nil:
		return data, fmt.Errorf("reading cache: %w", err)
	}

	data.Cached = true
	data.Features = len(snap.Features)
	data.FetchedAt = snap.FetchedAt
	data.Age = now.Sub(snap.FetchedAt).Round(time.Second)
	data.Fresh = data.Age < cacheTTL()
	return data, nil
}

func statusRun(w io.Writer, data statusData, format string) error {
	if format != "" {
		tmpl, err := template.New("status").Parse(format)
		if err != nil {
			return fmt.Errorf("invalid format template: %w", err)
		}
		if err := tmpl.Execute(w, data); err != nil {
			return fmt.Errorf("executing format template: %w", err)
		}
		_, err = fmt.Fprintln(w)
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, data)
	}

	fmt.Fprintf(w, "Catalog:  %s\n", data.CatalogURL)
	fmt.Fprintf(w, "Storage:  %s (%s)\n", data.Backend, data.DataDir)
	fmt.Fprintf(w, "Layout:   %s\n", layoutName(data.Compact))
	if !data.Cached {
		fmt.Fprintln(w, "Cache:    empty")
		return nil
	}
	state := "stale"
	if data.Fresh {
		state = "fresh"
	}
	_, err := fmt.Fprintf(w, "Cache:    %d features, fetched %s ago (%s)\n", data.Features, data.Age, state)
	return err
}

func layoutName(compact bool) string {
	if compact {
		return "compact"
	}
	return "full"
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
