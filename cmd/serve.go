package cmd

import (
	"github.com/chris-regnier/featurectl/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve the catalog as JSON until interrupted.

Routes:
  GET /api/features?search=&source=&platform=&commands=&count=
  GET /api/features/{name}
  GET /api/prefs, PUT /api/prefs   {"compact": true|false}
  GET /healthz

Display preferences are kept per client in a signed cookie.`,
	Example: `  featurectl serve
  featurectl serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appConfig.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		srv := web.NewServer(web.Config{
			Source:        newSource(),
			Addr:          addr,
			BaseURL:       appConfig.FeaturesPageURL(),
			SessionSecret: appConfig.Serve.SessionSecret,
		})
		return srv.Serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config serve.addr)")
	rootCmd.AddCommand(serveCmd)
}
