package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transportdesk/lr-extractor/internal/common"
	"github.com/transportdesk/lr-extractor/internal/export"
	"github.com/transportdesk/lr-extractor/internal/extract"
	"github.com/transportdesk/lr-extractor/internal/llm/openai"
	"github.com/transportdesk/lr-extractor/internal/notify"
	"github.com/transportdesk/lr-extractor/internal/repository"
	"github.com/transportdesk/lr-extractor/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	logger.Info("starting lrd",
		"model", cfg.LLM.Model,
		"retries", cfg.LLM.Retries,
		"api_key", common.MaskSecret(cfg.LLM.APIKey),
		"http_addr", cfg.Server.HTTPAddr,
	)
	if cfg.LLM.APIKey == "" {
		logger.Warn("no API key configured; extraction will always fail closed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// notifier (optional side channel)
	var notifier notify.Notifier = notify.Nop{}
	wa := notify.NewWhatsApp(notify.Config{
		PhoneNumberID: cfg.Notify.PhoneNumberID,
		Token:         cfg.Notify.Token,
		Recipient:     cfg.Notify.Recipient,
	}, logger)
	if wa.Configured() {
		notifier = wa
	} else {
		logger.Warn("whatsapp notifier not configured; alerts disabled")
	}

	// record store: Postgres when a DSN is set, local SQLite otherwise
	var store repository.ShipmentRepository
	if cfg.Database.DSN != "" {
		pg, err := repository.OpenPostgres(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("open postgres", "error", err)
			os.Exit(1)
		}
		if err := pg.HealthCheck(ctx, 3*time.Second); err != nil {
			logger.Error("db health failed", "error", err)
			os.Exit(1)
		}
		store = pg
	} else {
		lite, err := repository.OpenSQLite(ctx, cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Error("open sqlite", "error", err)
			os.Exit(1)
		}
		store = lite
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close store", "error", err)
		}
	}()

	model := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, notifier, logger)

	extractor := extract.NewExtractor(extract.Config{Retries: cfg.LLM.Retries}, model, notifier, logger)
	exporter := export.NewService(store, logger)

	srv := server.NewServer(cfg.Server.HTTPAddr, extractor, store, exporter, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("http server", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
