package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "marketplace",
		Usage: "order fulfillment core of the food marketplace",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API, the live order feed and the background jobs",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or revert database migrations",
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all pending migrations", Action: migrateUp},
					{Name: "down", Usage: "revert all migrations", Action: migrateDown},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func migrateUp(_ *cli.Context) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	return migrations.Up(cfg.DSN())
}

func migrateDown(_ *cli.Context) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	return migrations.Down(cfg.DSN())
}

func serve(c *cli.Context) error {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gorm_postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = redisClient.Close() }()
	if err = redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	kafkaWriter := kafka.NewWriter(cfg.KafkaHost, cfg.KafkaOrderChangedTopic)
	defer func() { _ = kafkaWriter.Close() }()

	root := cmd.NewCompositionRoot(cfg, gormDB, redisClient, kafkaWriter, logger)

	e, err := httpadapter.NewRouter(root.CreateServer(), cfg.CORSAllowedOrigins, logger)
	if err != nil {
		return err
	}

	hubDone := make(chan error, 1)
	go func() { hubDone <- root.Hub().Run(ctx) }()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serverDone := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		serverDone <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-serverDone:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case err = <-hubDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Order feed stopped", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
