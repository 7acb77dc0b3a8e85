package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"linktracker/internal/bot"
	"linktracker/internal/cache"
	"linktracker/internal/config"
	"linktracker/internal/database"
	"linktracker/internal/geo"
	"linktracker/internal/ident"
	"linktracker/internal/service"
	"linktracker/internal/store"
	"linktracker/internal/tracking"
)

func main() {
	if err := run(); err != nil {
		slog.Error("LinkTracker stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	slog.Info("Starting LinkTracker service...", "port", cfg.Port, "storage", cfg.StorageBackend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	records := store.New(backend)

	var recorderOpts []tracking.RecorderOption
	if cfg.ClickHouse.Addr != "" {
		analytics, err := database.ConnectClickHouse(ctx, database.ClickHouseOptions{
			Addr:     cfg.ClickHouse.Addr,
			User:     cfg.ClickHouse.User,
			Password: cfg.ClickHouse.Password,
			Database: cfg.ClickHouse.Database,
		})
		if err != nil {
			slog.Error("Could not connect to ClickHouse", "error", err)
			return err
		}
		analytics.Start(ctx)
		defer func() {
			stop()
			if err := analytics.Close(); err != nil {
				slog.Warn("ClickHouse close error", "error", err)
			}
		}()
		recorderOpts = append(recorderOpts, tracking.WithSink(analytics))
	}
	recorder := tracking.NewRecorder(records, recorderOpts...)

	resolverOpts := []tracking.ResolverOption{
		tracking.WithCoordinateSource(tracking.ReportedCoordinates{}),
		tracking.WithTimeouts(cfg.LocationTimeout, cfg.IPLookupTimeout),
	}
	if cfg.GeoIPPath != "" {
		geoDB, err := geo.OpenGeoIP(cfg.GeoIPPath)
		if err != nil {
			slog.Error("Could not open GeoIP database", "error", err)
			return err
		}
		defer geoDB.Close()
		resolverOpts = append(resolverOpts, tracking.WithIPLocator(geoDB))
	} else {
		slog.Warn("GEOIP_DB_PATH not set, IP-based location disabled")
	}
	resolver := tracking.NewResolver(records, recorder, resolverOpts...)

	shortener := service.NewShortener(records, ident.Random{}, cfg.TrackingCodeLength)

	botErr := make(chan error, 1)
	if cfg.TelegramToken != "" {
		tgBot, err := bot.NewTelegramBot(cfg.TelegramToken, cfg.BaseURL, records, shortener)
		if err != nil {
			slog.Error("Could not initialize bot", "error", err)
			return err
		}
		go func() { botErr <- tgBot.Start(ctx) }()
	}

	server := service.NewServer(cfg.Port, cfg.BaseURL, records, shortener, recorder, resolver)
	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start(ctx) }()

	slog.Info("Service is up and running!")

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server stopped with error", "error", err)
			stop()
			return err
		}
	case err := <-botErr:
		if err != nil {
			slog.Error("Bot stopped with error", "error", err)
			stop()
			return err
		}
	}

	slog.Info("Shutting down gracefully...")
	return nil
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			slog.Error("Could not connect to Postgres", "error", err)
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.BackendRedis:
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			slog.Error("Could not connect to Redis", "error", err)
			return nil, nil, err
		}
		return rdb, func() { _ = rdb.Close() }, nil
	case config.BackendDisabled:
		slog.Warn("Persistence disabled, links and analytics will not be stored")
		return store.DisabledBackend{}, func() {}, nil
	default:
		return store.NewMemoryBackend(), func() {}, nil
	}
}
