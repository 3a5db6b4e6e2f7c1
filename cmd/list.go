package cmd

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/ui"
	"github.com/spf13/cobra"
)

type listOptions struct {
	all   bool
	count int
	table bool
}

var listOpts listOptions

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog features",
	Long: `List catalog features, sorted by name.

Prints the first page of results as the catalog page would show it. Use
--count to reveal more, or --all for every match.`,
	Example: `  featurectl list
  featurectl list --search ping
  featurectl list --source visual --table
  featurectl list --query "search=dodge&source=macros" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := filterFlags.values(cmd)
		if err != nil {
			return err
		}
		return listRun(cmd.Context(), cmd.OutOrStdout(), query, listOpts)
	},
}

func listRun(ctx context.Context, w io.Writer, query url.Values, opts listOptions) error {
	e := newEngine(query)
	defer e.Unmount()
	if err := e.Load(ctx); err != nil {
		return err
	}
	e.RevealTo(opts.count)

	page := catalog.NewPage(e.Snapshot(), opts.all)
	if jsonOutput {
		return ui.FormatJSON(w, page)
	}

	var buf bytes.Buffer
	ui.FormatPage(&buf, page, opts.table)
	if w == os.Stdout {
		return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, ui.ResolveTheme(appConfig.Theme))
	}
	_, err := io.Copy(w, &buf)
	return err
}

func init() {
	filterFlags.register(listCmd)
	listCmd.Flags().BoolVar(&listOpts.all, "all", false, "print every match instead of the first page")
	listCmd.Flags().IntVar(&listOpts.count, "count", 0, "reveal at least this many matches")
	listCmd.Flags().BoolVar(&listOpts.table, "table", false, "print a table instead of cards")
	rootCmd.AddCommand(listCmd)
}
