package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yoBruxo/PTbotKND/internal/api"
	"github.com/yoBruxo/PTbotKND/internal/config"
	"github.com/yoBruxo/PTbotKND/internal/events"
	"github.com/yoBruxo/PTbotKND/internal/factory"
	"github.com/yoBruxo/PTbotKND/internal/metrics"
	"github.com/yoBruxo/PTbotKND/internal/notify"
	"github.com/yoBruxo/PTbotKND/internal/selfping"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics.Register()

	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Shutdown()

	// Bridge events onto NATS when configured
	var publisher *notify.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = notify.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sub := app.Dispatcher.Subscribe("nats", events.DefaultBuffer)
		go publisher.Run(sub)
		defer publisher.Close()
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		PartyController: app.PartyController,
		AuthService:     app.AuthService,
		Clock:           app.Clock,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(router, serverConfig, logger)

	// Keep the service awake when a public URL is configured
	if pinger := selfping.New(cfg.SelfPing.URL, cfg.SelfPing.Interval, logger); pinger != nil {
		go pinger.Run()
		defer pinger.Stop()
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
