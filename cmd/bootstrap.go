package cmd

import (
	"context"
	"errors"
	"fmt"

	"langusta/core/config"
	"langusta/core/database"
	"langusta/core/datasource"
	"langusta/core/langusta"
	"langusta/core/logger"
	"langusta/core/redis"
	"langusta/core/storage"
	"langusta/core/store"

	"go.uber.org/zap"
)

// loadRuntime reads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openStore builds the configured version store. The returned cleanup releases connections.
func openStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.Langusta.Store {
	case langusta.StoreSQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		sqlStore := store.NewSQL(db, cfg.Langusta.Namespace)
		if err := sqlStore.Migrate(ctx); err != nil {
			return nil, noop, fmt.Errorf("failed to migrate version store: %w", err)
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		l.Info("Using SQL version store", zap.String("driver", cfg.Database.Driver))
		return sqlStore, cleanup, nil

	case langusta.StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		l.Info("Using Redis version store")
		return store.NewRedis(client, cfg.Langusta.Namespace), func() { _ = client.Close() }, nil

	default:
		return store.NewMemory(), noop, nil
	}
}

// openDataSource builds the baseline + remote data source. client may be nil unless the object
// remote source is configured.
func openDataSource(cfg *config.Config, client storage.Client, l *zap.Logger) (datasource.DataSource, error) {
	baseline := datasource.File(cfg.Langusta.BaselineFile)

	switch cfg.Langusta.RemoteSource {
	case langusta.RemoteHTTP:
		remote, err := datasource.NewHTTP(cfg.Langusta.RemoteURL, cfg.Langusta.HTTPTimeout(), l)
		if err != nil {
			return nil, err
		}
		return datasource.NewComposite(baseline, remote), nil
	case langusta.RemoteObject:
		if client == nil {
			return nil, errors.New("object remote source requires a storage client")
		}
		return datasource.NewComposite(baseline, datasource.NewObject(client, cfg.Storage.Bucket, cfg.Langusta.RemoteObject)), nil
	default:
		return datasource.NewComposite(baseline, nil), nil
	}
}

// newLangusta wires a Langusta instance from configuration. fetchOnInit overrides the
// configured value when non-nil.
func newLangusta(ctx context.Context, cfg *config.Config, l *zap.Logger, client storage.Client, fetchOnInit *bool) (*langusta.Langusta, func(), error) {
	if err := cfg.Langusta.Validate(); err != nil {
		return nil, func() {}, err
	}
	policy, err := cfg.Langusta.Policy()
	if err != nil {
		return nil, func() {}, err
	}

	src, err := openDataSource(cfg, client, l)
	if err != nil {
		return nil, func() {}, err
	}

	st, cleanup, err := openStore(ctx, cfg, l)
	if err != nil {
		return nil, cleanup, err
	}

	fetch := cfg.Langusta.FetchOnInit
	if fetchOnInit != nil {
		fetch = *fetchOnInit
	}

	inst, err := langusta.New(ctx, langusta.Config{
		Platform:           cfg.Langusta.Platform,
		SupportedLanguages: cfg.Langusta.Languages,
		DefaultLanguage:    cfg.Langusta.DefaultLanguage,
		DataSource:         src,
		Store:              st,
		FetchOnInit:        fetch,
		ValuePolicy:        policy,
		Logger:             l,
	})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return inst, cleanup, nil
}
