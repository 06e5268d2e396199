package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"audiodrop/docs"
	"audiodrop/internal/config"
	"audiodrop/internal/database"
	handlers "audiodrop/internal/http/handler"
	"audiodrop/internal/http/middleware"
	"audiodrop/internal/ingest"
	"audiodrop/internal/library"
	"audiodrop/internal/logging"
	"audiodrop/internal/otel"
	"audiodrop/internal/player"
	"audiodrop/internal/repository"
	"audiodrop/internal/repository/kv"
	"audiodrop/internal/repository/postgres"
	"audiodrop/internal/service"
	"audiodrop/internal/storage"
)

// @title Audio Drop API
// @version 1.0
// @description Upload, list, play and delete MP3 files stored as data URLs.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Log.Level, logging.Location(cfg.Log.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.WithError(err).WithField("backend", cfg.Store.Backend).Fatal("failed to open audio store")
	}
	defer closeRepo()

	lib, err := library.New(repo, log, prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register library metrics")
	}
	lib.Load(ctx)

	in := ingest.New(ingest.Options{
		AcceptedMIME: cfg.Ingest.AcceptedMIME,
		Strategy:     cfg.Ingest.Strategy,
		Workers:      cfg.Ingest.Workers,
	}, log)
	audioSvc := service.NewAudioService(lib, in, player.NewRegistry(cfg.PlaybackExclusive, lib.Has))

	app := fiber.New(fiber.Config{
		AppName:               "audiodrop",
		BodyLimit:             cfg.Ingest.MaxUploadMB * 1024 * 1024,
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, audioSvc)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("http shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{
		"addr":     addr,
		"backend":  cfg.Store.Backend,
		"strategy": cfg.Ingest.Strategy,
		"records":  len(lib.List()),
	}).Info("server starting")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("failed to start server")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.WithError(err).Error("tracer shutdown failed")
	}
}

// openRepository builds the audio list store selected by STORE_BACKEND.
func openRepository(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (repository.AudioRepository, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendFS:
		s, err := storage.NewFS(afero.NewOsFs(), cfg.Store.Dir)
		if err != nil {
			return nil, noop, err
		}
		return kv.New(s, cfg.Store.Key), noop, nil
	case config.BackendMinIO:
		s, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, noop, err
		}
		return kv.New(s, cfg.Store.Key), noop, nil
	case config.BackendPostgres:
		db, err := database.Open(ctx, cfg.Database, log)
		if err != nil {
			return nil, noop, err
		}
		return postgres.NewAudioPostgres(db, cfg.Store.Key), func() { _ = db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
