package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transportdesk/lr-extractor/internal/common"
)

// Config holds Postgres pool settings.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS shipments (
	id           UUID PRIMARY KEY,
	message      TEXT NOT NULL,
	truck_number TEXT NOT NULL DEFAULT '',
	from_place   TEXT NOT NULL DEFAULT '',
	to_place     TEXT NOT NULL DEFAULT '',
	weight       TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	sender_name  TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS shipments_created_at_idx ON shipments (created_at);
`

// PostgresStore is the pgx-backed shipment store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a pgx pool, verifies connectivity, and ensures the
// shipments table exists.
func OpenPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")

	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, common.WrapError(err, "parse dsn")
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "lr-extractor"

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.WrapError(err, "connect")
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		logger.Error("failed to ensure schema", "error", err)
		return nil, common.WrapError(err, "ensure schema")
	}

	logger.Info("successfully connected to database")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) SaveShipment(ctx context.Context, rec ShipmentRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO shipments (id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Message, rec.TruckNumber, rec.FromPlace, rec.ToPlace,
		rec.Weight, rec.Description, rec.SenderName, rec.CreatedAt,
	)
	if err != nil {
		s.logger.Error("save shipment failed", "id", rec.ID, "error", err)
		return common.NewAppError("DB_ERROR", "save shipment", err)
	}
	s.logger.Info("shipment saved", "id", rec.ID, "truck", rec.TruckNumber)
	return nil
}

func (s *PostgresStore) GetShipment(ctx context.Context, id uuid.UUID) (*ShipmentRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at
		FROM shipments WHERE id = $1`, id)

	var rec ShipmentRecord
	err := row.Scan(&rec.ID, &rec.Message, &rec.TruckNumber, &rec.FromPlace, &rec.ToPlace,
		&rec.Weight, &rec.Description, &rec.SenderName, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "get shipment", err)
	}
	return &rec, nil
}

func (s *PostgresStore) ListShipments(ctx context.Context, from, to *time.Time) ([]ShipmentRecord, error) {
	query := `
		SELECT id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at
		FROM shipments WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += ` AND created_at >= $1`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			query += ` AND created_at <= $2`
		} else {
			query += ` AND created_at <= $1`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "list shipments", err)
	}
	defer rows.Close()

	var out []ShipmentRecord
	for rows.Next() {
		var rec ShipmentRecord
		if err := rows.Scan(&rec.ID, &rec.Message, &rec.TruckNumber, &rec.FromPlace, &rec.ToPlace,
			&rec.Weight, &rec.Description, &rec.SenderName, &rec.CreatedAt); err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan shipment", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.logger.Info("closing database connections")
	s.pool.Close()
	return nil
}
