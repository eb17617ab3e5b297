package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/octozek/internal/catalog"
	"github.com/Simplici0/octozek/internal/config"
	"github.com/Simplici0/octozek/internal/db"
	"github.com/Simplici0/octozek/internal/logging"
	"github.com/Simplici0/octozek/internal/mail"
	"github.com/Simplici0/octozek/internal/migrations"
	"github.com/Simplici0/octozek/internal/order"
	"github.com/Simplici0/octozek/internal/seed"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg     config.Config
	logger  *zap.Logger
	orders  *order.Service
	catalog *catalog.Store
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      "stdout",
		Development: cfg.IsDev(),
	})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, logger); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}
	stats, err := seed.Run(ctx, database, seed.DefaultConfig())
	if err != nil {
		logger.Fatal("failed to seed catalog", zap.Error(err))
	}
	logger.Info("catalog ready", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	var sender mail.Sender
	if cfg.MailConfigured() {
		resend, err := mail.NewResendClient(mail.ResendConfig{
			APIKey:  cfg.ResendAPIKey,
			BaseURL: cfg.ResendBaseURL,
			Timeout: cfg.MailTimeout,
		})
		if err != nil {
			logger.Fatal("failed to build mail client", zap.Error(err))
		}
		sender = resend
	}

	store := catalog.New(database)
	srv := &server{
		cfg:     cfg,
		logger:  logger,
		catalog: store,
		orders: order.NewService(sender, store, order.Config{
			FromEmail: cfg.FromEmail,
			ToEmail:   cfg.ToEmail,
		}, logger.Named("order")),
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server running", zap.String("addr", "http://localhost:"+cfg.Port))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
