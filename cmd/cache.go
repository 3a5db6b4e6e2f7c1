package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local catalog snapshot",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached catalog snapshot",
	Long:  "Drop every cached catalog snapshot. The next command fetches the catalog again.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cacheClearRun(cmd.OutOrStdout())
	},
}

func cacheClearRun(w io.Writer) error {
	if err := store.ClearCatalog(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	_, err := fmt.Fprintln(w, "Catalog cache cleared.")
	return err
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
