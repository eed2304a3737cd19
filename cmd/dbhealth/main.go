package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/transportdesk/lr-extractor/internal/common"
	"github.com/transportdesk/lr-extractor/internal/repository"
)

// dbhealth opens the configured shipment store, pings it and exits. Useful as
// a deploy-time smoke check.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.DSN == "" {
		lite, err := repository.OpenSQLite(ctx, cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Error("sqlite open failed", "path", cfg.Database.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer lite.Close()
		logger.Info("sqlite health OK", "path", cfg.Database.SQLitePath)
		return
	}

	pg, err := repository.OpenPostgres(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("postgres open failed", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.HealthCheck(ctx, 3*time.Second); err != nil {
		logger.Error("postgres ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("postgres health OK")
}
