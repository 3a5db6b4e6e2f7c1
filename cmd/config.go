package cmd

import (
	"fmt"
	"io"

	"github.com/chris-regnier/featurectl/internal/config"
	"github.com/chris-regnier/featurectl/internal/editor"
	"github.com/spf13/cobra"
)

const configSeed = `# featurectl configuration
# storage = "file"            # file or sqlite
# catalog_url = "http://localhost:3000/features.json"
# site_url = "http://localhost:3000"
# cache_ttl = "10m"
# max_width = 100

[theme]
# preset = "default-dark"

[log]
# level = "warn"
# format = "text"

[serve]
# addr = "localhost:8080"
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in your editor",
	Long: `Open the configuration file in $EDITOR, creating it with commented
defaults when it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun(cmd.OutOrStdout(), editor.ResolveEditor(appConfig.Editor))
	},
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

func configEditRun(w io.Writer, editorCmd string) error {
	path := configPath()
	changed, err := editor.EditFile(editorCmd, path, configSeed)
	if err != nil {
		return err
	}
	if !changed {
		_, err = fmt.Fprintln(w, "No changes.")
		return err
	}
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("%s saved but does not load: %w", path, err)
	}
	_, err = fmt.Fprintf(w, "Saved %s\n", path)
	return err
}

func init() {
	configCmd.AddCommand(configPathCmd, configEditCmd)
	rootCmd.AddCommand(configCmd)
}
