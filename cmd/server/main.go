package main

import (
	"context"

	"github.com/billforge/invoicing-api/internal/config"
	"github.com/billforge/invoicing-api/internal/database"
	"github.com/billforge/invoicing-api/internal/handler"
	"github.com/billforge/invoicing-api/internal/logger"
	"github.com/billforge/invoicing-api/internal/repository"
	"github.com/billforge/invoicing-api/internal/server"
	"github.com/billforge/invoicing-api/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger is not configured yet; fall back to a default one
		logger.New(logger.Config{}).Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	defer func() {
		_ = log.Sync()
	}()

	db, err := database.NewPostgresDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("database connection established")

	invoiceRepo := repository.NewPostgresInvoiceRepository(db)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	appServer := server.NewServer(cfg, log, invoiceHandler)
	if err := appServer.Start(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
