package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/chris-regnier/featurectl/internal/ui"
	"github.com/spf13/cobra"
)

var showMarkdownOnly bool

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a catalog feature",
	Long:  "Display a feature's description, authors, availability and commands.",
	Example: `  featurectl show PingCheck
  featurectl show pingcheck --json
  featurectl show PingCheck --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func showRun(ctx context.Context, w io.Writer, name string) error {
	e := newEngine(nil)
	defer e.Unmount()
	if err := e.Load(ctx); err != nil {
		return err
	}

	f, ok := catalog.Find(e.Features(), name)
	if !ok {
		return fmt.Errorf("feature %q not found", name)
	}

	switch {
	case jsonOutput:
		return ui.FormatJSON(w, f)
	case showMarkdownOnly:
		_, err := io.WriteString(w, ui.FeatureMarkdown(f))
		return err
	}

	theme := ui.ResolveTheme(appConfig.Theme)
	var buf bytes.Buffer
	ui.FormatFeatureFull(&buf, f, appConfig.MaxWidth, theme.MarkdownStyle)
	if w == os.Stdout {
		return ui.OutputOrPage(w, buf.String(), false, appConfig.MaxWidth, theme)
	}
	_, err := io.Copy(w, &buf)
	return err
}

func init() {
	showCmd.Flags().BoolVar(&showMarkdownOnly, "markdown", false, "print the unrendered markdown")
	rootCmd.AddCommand(showCmd)
}
