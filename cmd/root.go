package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris-regnier/featurectl/internal/config"
	"github.com/chris-regnier/featurectl/internal/logging"
	"github.com/chris-regnier/featurectl/internal/storage"
	"github.com/chris-regnier/featurectl/internal/storage/file"
	"github.com/chris-regnier/featurectl/internal/storage/sqlite"
	"github.com/chris-regnier/featurectl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	refreshCache   bool
	appConfig      *config.Config
	store          storage.Storage
)

var rootCmd = &cobra.Command{
	Use:   "featurectl",
	Short: "Browse the Adrenalin feature catalog",
	Long: `featurectl browses the Adrenalin feature catalog from the terminal.

Run without arguments in a terminal to open the interactive browser. When
stdout is not a terminal the first page is printed as with "list".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		logging.Init(logging.ParseLevel(appConfig.Log.Level), appConfig.Log.Format)

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		switch appConfig.Storage {
		case "file":
			store, err = file.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing file storage: %w", err)
			}
		case "sqlite":
			store, err = sqlite.New(appConfig.DataDir)
			if err != nil {
				return fmt.Errorf("initializing sqlite storage: %w", err)
			}
		default:
			return fmt.Errorf("unknown storage backend: %s", appConfig.Storage)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := filterFlags.values(cmd)
		if err != nil {
			return err
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return listRun(cmd.Context(), os.Stdout, query, listOptions{})
		}
		return ui.RunTUI(cmd.Context(), newEngine(query), ui.TUIConfig{
			MaxWidth: appConfig.MaxWidth,
			Theme:    ui.ResolveTheme(appConfig.Theme),
		})
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (file|sqlite)")
	rootCmd.PersistentFlags().BoolVar(&refreshCache, "refresh", false, "bypass the cached catalog and fetch it again")
	filterFlags.register(rootCmd)

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
