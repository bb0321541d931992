package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"langusta/core/config"
	"langusta/core/langusta"
	"langusta/core/payload"
	"langusta/core/storage"
	"langusta/feature/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	publishForce bool
	publishKeep  int
)

// publishCmd uploads a document to object storage.
var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Publish a localization document to object storage",
	Long: `Validates a JSON or YAML document and uploads it as the current remote document.
The previously published revision is archived. The new version must be newer unless --force.

Examples:
  langusta publish localizations.yaml
  langusta publish --force --keep 10 localizations.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishForce, "force", false, "Publish even if the version is not newer")
	publishCmd.Flags().IntVar(&publishKeep, "keep", 0, "Archived revisions to keep (0 keeps all)")
	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	data, err := readDocument(args[0])
	if err != nil {
		return err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return err
	}

	svc := publish.NewService(client, cfg.Storage.Bucket, cfg.Langusta.RemoteObject, publishKeep, l)
	result, err := svc.Publish(ctx, data, publishForce)
	if err != nil {
		return err
	}

	l.Info("Published",
		zap.String("version", result.Version),
		zap.String("previous_version", result.PreviousVersion),
		zap.Strings("languages", result.Languages),
		zap.String("archived", result.Archived),
		zap.Strings("pruned", result.Pruned),
	)
	return nil
}

// readDocument reads a JSON document, converting YAML files by extension.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return payload.FromYAML(data)
	default:
		return data, nil
	}
}

// optionalStorage creates a storage client only when the object remote source needs one.
func optionalStorage(cfg *config.Config, l *zap.Logger) (storage.Client, error) {
	if cfg.Langusta.RemoteSource != langusta.RemoteObject {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}
	l.Debug("Using object storage remote", zap.String("bucket", cfg.Storage.Bucket))
	return client, nil
}
