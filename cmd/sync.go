package cmd

import (
	"context"
	"fmt"

	"langusta/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncLanguage string

// syncCmd runs one reconciliation against the remote source.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the remote document once and update the version store",
	Long: `Loads the baseline, reconciles it with the configured version store, then fetches the
remote document and merges it when its version is newer.

Examples:
  # Sync using configuration from the environment
  langusta sync

  # Switch the active language first (relevant with a language-filtering remote)
  langusta sync --language cs`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncLanguage, "language", "", "Active language to sync with")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	if syncLanguage != "" {
		if err := inst.ChangeLanguage(syncLanguage); err != nil {
			return err
		}
	}

	res := inst.Refresh(ctx)
	fields := []zap.Field{
		zap.String("outcome", string(res.Outcome)),
		zap.String("previous_version", res.PreviousVersion),
		zap.String("remote_version", res.RemoteVersion),
		zap.String("version", inst.Version()),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	l.Info("Sync finished", fields...)

	if res.Outcome == reconcile.OutcomeStoreError {
		return fmt.Errorf("failed to persist version %s: %w", res.RemoteVersion, res.Err)
	}
	return nil
}
