package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	locaLanguage string
	locaFetch    bool
)

// locaCmd resolves a single key.
var locaCmd = &cobra.Command{
	Use:   "loca <key> [args...]",
	Short: "Print the localized value for a key",
	Long: `Resolves a key against the synchronized set and prints the value. Extra arguments
replace the value's placeholders in order.

Examples:
  langusta loca greeting Petr
  langusta loca --language en --fetch greeting Petr`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoca,
}

func init() {
	locaCmd.Flags().StringVar(&locaLanguage, "language", "", "Language to resolve in (defaults to the configured default)")
	locaCmd.Flags().BoolVar(&locaFetch, "fetch", false, "Refresh from the remote source before resolving")
	RootCmd.AddCommand(locaCmd)
}

func runLoca(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	client, err := optionalStorage(cfg, l)
	if err != nil {
		return err
	}

	noFetch := false
	inst, cleanup, err := newLangusta(ctx, cfg, l, client, &noFetch)
	defer cleanup()
	if err != nil {
		return err
	}

	if locaLanguage != "" {
		if err := inst.ChangeLanguage(locaLanguage); err != nil {
			return err
		}
	}
	if locaFetch {
		inst.Refresh(ctx)
	}

	var lookupArgs []string
	if len(args) > 1 {
		lookupArgs = args[1:]
	}
	value, err := inst.Lookup(args[0], lookupArgs...)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
