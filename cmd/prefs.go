package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/chris-regnier/featurectl/internal/prefs"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read or change display preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print a preference",
	Example:   "  featurectl prefs get compact",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"compact"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsGetRun(cmd.OutOrStdout(), args[0])
	},
}

var prefsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Change a preference",
	Example: "  featurectl prefs set compact false",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return prefsSetRun(cmd.OutOrStdout(), args[0], args[1])
	},
}

func prefsGetRun(w io.Writer, key string) error {
	if key != "compact" {
		return fmt.Errorf("unknown preference %q (known: compact)", key)
	}
	compact := prefs.NewBridge(store).CompactMode()
	_, err := fmt.Fprintln(w, compact)
	return err
}

func prefsSetRun(w io.Writer, key, value string) error {
	if key != "compact" {
		return fmt.Errorf("unknown preference %q (known: compact)", key)
	}
	compact, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("compact must be true or false, got %q", value)
	}

	// Written directly so a failing store is reported here, unlike in the
	// browser where preference writes are best-effort.
	raw := []byte(strconv.FormatBool(compact))
	if err := store.SetPref(prefs.KeyCompactMode, raw); err != nil {
		return fmt.Errorf("saving preference: %w", err)
	}
	_, err = fmt.Fprintf(w, "compact = %t\n", compact)
	return err
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
