package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/nordqvist/webshop/internal/config"
	"github.com/nordqvist/webshop/internal/handler"
	"github.com/nordqvist/webshop/internal/integrations/r2"
	"github.com/nordqvist/webshop/internal/integrations/resend"
	"github.com/nordqvist/webshop/internal/jobs"
	"github.com/nordqvist/webshop/internal/mailer"
	"github.com/nordqvist/webshop/internal/service"
	"github.com/nordqvist/webshop/internal/session"
	"github.com/nordqvist/webshop/internal/storage"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(config.Get("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Validate configuration
	cfg := config.Default
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := storage.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := storage.Migrate(context.Background(), db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Pick the outbound email transport
	var m mailer.Mailer
	switch cfg.Get("MAILER") {
	case "smtp":
		m = mailer.NewSMTPSender(cfg, logger)
	default:
		m = resend.NewClient(cfg, logger)
	}

	// Initialize layers
	sessions := session.NewManager(cfg)
	h := handler.New(
		service.NewAuthService(db, logger),
		service.NewContactService(db, m, cfg, logger),
		service.NewMediaService(db, r2.NewStore(cfg), cfg, logger),
		sessions, cfg, logger,
	)

	// Schedule the inquiry digest
	digest, err := jobs.Start(jobs.NewDigest(db, m, cfg, logger), logger)
	if err != nil {
		logger.Fatalf("Failed to schedule digest: %v", err)
	}
	defer digest.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Get("PORT"))
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
