package cmd

import (
	"fmt"
	"io"
	"net/url"

	"github.com/chris-regnier/featurectl/internal/catalog"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print a shareable catalog link",
	Long: `Print the catalog page URL for a search and category.

Only the search and source parameters are part of the link; platform and
commands are accepted but, as on the catalog page, not written back.`,
	Example: `  featurectl link --search ping --source visual
  featurectl link --query "search=dodge"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := filterFlags.values(cmd)
		if err != nil {
			return err
		}
		return linkRun(cmd.OutOrStdout(), query)
	},
}

func linkRun(w io.Writer, query url.Values) error {
	state := catalog.NewState()
	catalog.ParseQuery(query, &state)

	link, err := catalog.ShareURL(appConfig.FeaturesPageURL(), state)
	if err != nil {
		return fmt.Errorf("building link: %w", err)
	}
	_, err = fmt.Fprintln(w, link)
	return err
}

func init() {
	filterFlags.register(linkCmd)
	rootCmd.AddCommand(linkCmd)
}
