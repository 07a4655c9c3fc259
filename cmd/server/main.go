package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/pautinka/internal/config"
	"github.com/iudanet/pautinka/internal/crypto"
	"github.com/iudanet/pautinka/internal/logger"
	"github.com/iudanet/pautinka/internal/server"
	"github.com/iudanet/pautinka/internal/server/auth"
	"github.com/iudanet/pautinka/internal/server/cache"
	"github.com/iudanet/pautinka/internal/server/handlers"
	"github.com/iudanet/pautinka/internal/server/jwt"
	"github.com/iudanet/pautinka/internal/server/service"
	"github.com/iudanet/pautinka/internal/server/storage"
	"github.com/iudanet/pautinka/internal/server/storage/postgres"
	"github.com/iudanet/pautinka/internal/server/storage/sqlite"
	"github.com/iudanet/pautinka/internal/telemetry"
	"github.com/iudanet/pautinka/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// store хранилище с проверкой доступности для /health
type store interface {
	storage.Storage
	Ping(ctx context.Context) error
}

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-version" || os.Args[1] == "--version") {
		printVersion()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pautinka: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	log, err := logger.New(os.Stdout, cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	log.InfoContext(ctx, "Pautinka server starting",
		slog.String("version", Version),
		slog.String("commit", GitCommit),
		slog.String("env", cfg.Env),
		slog.String("db_driver", cfg.Database.Driver),
	)

	tp, shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     Version,
		SampleRatio: cfg.Telemetry.SampleRatio,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("Failed to flush traces", slog.Any("error", err))
		}
	}()

	db, err := openStorage(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close storage", slog.Any("error", err))
		}
	}()

	searchCache, closeCache, err := openCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeCache()

	tokens, err := jwt.NewService(jwt.Config{
		Secret:    []byte(cfg.Auth.SecretKey),
		Algorithm: cfg.Auth.HashAlgorithm,
		TTL:       cfg.Auth.TokenTTL(),
	})
	if err != nil {
		return fmt.Errorf("init tokens: %w", err)
	}

	v := validation.New()
	profiles := service.NewProfileService(db, db, crypto.NewHasher(cfg.Auth.BcryptCost), tokens, searchCache, log)

	if _, err := profiles.EnsureRootUser(ctx, service.RootUser{
		Name:     cfg.Root.Name,
		Surname:  cfg.Root.Surname,
		Password: cfg.Root.Password,
	}); err != nil {
		return err
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:         log,
		Resolver:       auth.NewGate(tokens, db),
		TracerProvider: tp,
		CORSOrigins:    cfg.CORSOrigins,
		Handlers: server.Handlers{
			Auth:         handlers.NewAuthHandler(log, profiles, v),
			User:         handlers.NewUserHandler(log, profiles, v),
			Review:       handlers.NewReviewHandler(log, service.NewReviewService(db, db, log), v),
			Search:       handlers.NewSearchHandler(log, service.NewSearchService(db, searchCache, log)),
			Subscription: handlers.NewSubscriptionHandler(log, service.NewSubscriptionService(db, db)),
			Vacancy:      handlers.NewVacancyHandler(log, service.NewVacancyService(db, db, log), v),
			Health:       handlers.NewHealthHandler(log, db, Version),
		},
	})

	srv := server.New(cfg.Addr, router, server.Timeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Read:       cfg.HTTP.ReadTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
		Shutdown:   cfg.HTTP.ShutdownTimeout,
	}, log)

	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}

	log.Info("Pautinka server stopped")
	return nil
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig) (store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.PostgresDSN(),
			MaxConns:       cfg.MaxConns,
			ConnectTimeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return db, nil
	default:
		db, err := sqlite.New(ctx, cfg.SQLiteDSN())
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}
}

// openCache подключает Redis, если задан адрес. Без адреса поиск работает без кеша.
func openCache(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (cache.SearchCache, func(), error) {
	if cfg.Addr == "" {
		return cache.Nop{}, func() {}, nil
	}

	rc, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		TTL:      cfg.TTL,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Error("Failed to close redis", slog.Any("error", err))
		}
	}, nil
}

func printVersion() {
	fmt.Printf("Pautinka Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
