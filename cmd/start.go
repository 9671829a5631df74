package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manifest-resolver/core/config"
	"manifest-resolver/core/loader"
	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/metrics"
	"manifest-resolver/core/middleware/auth"
	"manifest-resolver/core/middleware/rayid"
	"manifest-resolver/core/storage"

	"manifest-resolver/feature/item"
	"manifest-resolver/feature/search"
	"manifest-resolver/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "manifest-resolver/docs/swagger"
)

// @title Manifest Resolver API
// @version 1.0
// @description Hydrates Destiny item definitions from a local manifest snapshot and searches items by name.
// @host localhost:8080
// @BasePath /

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the manifest resolver server",
	Long: `Loads the definition snapshot and serves item hydration, search and snapshot status over HTTP.
The server keeps running without a snapshot and answers 503 until one is delivered.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(envDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)
		logg = logg.With(zap.String("locale", cfg.Server.Locale))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := metrics.NewMetrics()

		client, err := storageClient(cfg)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		store, reloader, err := openStore(ctx, cfg, logg, m, client)
		switch {
		case store == nil:
			logg.Fatal("Failed to prepare snapshot loading", zap.Error(err))
		case err != nil:
			logg.Warn("Serving without a snapshot", zap.Error(err))
		default:
			logg.Info("Definition snapshot ready", zap.String("version", store.Version()))
		}

		if cfg.Manifest.Watch {
			if err := reloader.Watch(ctx); err != nil {
				logg.Warn("Snapshot watcher disabled", zap.Error(err))
			}
		}

		app, err := newApp(cfg, logg, m, store, reloader, client)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logg.Warn("Shutdown incomplete", zap.Error(err))
		}
		if snap, err := store.Snapshot(); err == nil {
			_ = snap.Close()
		}
	},
}

// newApp wires middleware and features. The ray id comes first so every
// later log line carries it; swagger and metrics stay outside the API key.
func newApp(cfg *config.Config, logg *zap.Logger, m *metrics.Metrics, store *manifest.Store, reloader *manifest.Reloader, client storage.Client) (*fiber.App, error) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			l.Error("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		l.Info("Request served", fields...)
		return nil
	})

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

	itemFeature, err := item.NewFeature(store, cfg.Hydration, logg, m)
	if err != nil {
		return nil, err
	}

	mgr := loader.NewManager()
	mgr.Register(itemFeature)
	mgr.Register(search.NewFeature(store, cfg.Search, logg, m))
	mgr.Register(snapshot.NewFeature(store, reloader, client, cfg.Storage.Bucket, cfg.Manifest, cfg.Server.Locale, logg))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
