package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"langusta/core/loader"
	"langusta/core/logger"
	"langusta/core/middleware/auth"
	"langusta/core/middleware/rayid"
	"langusta/core/storage"
	"langusta/feature/localization"
	"langusta/feature/publish"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// keepHistory bounds the publish archive; zero keeps everything.
var keepHistory int

// @title Langusta API
// @version 1.0
// @description Localization lookup, refresh and publishing API.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the localization server",
	Long: `Starts the HTTP server with the localization API (lookups over the synchronized set)
and the publish API (documents served from object storage).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// Publishing degrades to errors per request; lookups keep working.
			logg.Warn("Storage bucket unavailable", zap.Error(err))
		}

		// The localization API is optional: without a usable baseline only publishing runs.
		inst, cleanup, err := newLangusta(ctx, cfg, logg, client, nil)
		defer cleanup()
		if err != nil {
			logg.Warn("Localization client disabled", zap.Error(err))
		} else {
			logg.Info("Localizations initialized",
				zap.String("version", inst.Version()),
				zap.String("language", inst.Language()),
			)
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
		app.Get("/swagger/*", swagger.HandlerDefault)

		guard := auth.New(auth.Config{ApiKey: cfg.Server.ApiKey})

		mgr := loader.NewManager(logg)
		mgr.Register(localization.NewFeature(inst, logg, guard))
		mgr.Register(publish.NewFeature(client, cfg.Storage.Bucket, cfg.Langusta.RemoteObject, keepHistory, logg, guard))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().IntVar(&keepHistory, "keep-history", 20, "Archived revisions kept after each publish (0 keeps all)")
	RootCmd.AddCommand(startCmd)
}
