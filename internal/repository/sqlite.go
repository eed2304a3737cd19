package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/transportdesk/lr-extractor/internal/common"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS shipments (
	id           TEXT PRIMARY KEY,
	message      TEXT NOT NULL,
	truck_number TEXT NOT NULL DEFAULT '',
	from_place   TEXT NOT NULL DEFAULT '',
	to_place     TEXT NOT NULL DEFAULT '',
	weight       TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	sender_name  TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS shipments_created_at_idx ON shipments (created_at);
`

// SQLiteStore is the local, zero-dependency shipment store used when no
// Postgres DSN is configured.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the SQLite database at path and ensures the
// shipments table exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	// the driver is in-process; a single writer avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "ensure schema")
	}
	logger.Info("sqlite store ready", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) SaveShipment(ctx context.Context, rec ShipmentRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shipments (id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Message, rec.TruckNumber, rec.FromPlace, rec.ToPlace,
		rec.Weight, rec.Description, rec.SenderName, rec.CreatedAt,
	)
	if err != nil {
		s.logger.Error("save shipment failed", "id", rec.ID, "error", err)
		return common.NewAppError("DB_ERROR", "save shipment", err)
	}
	s.logger.Info("shipment saved", "id", rec.ID, "truck", rec.TruckNumber)
	return nil
}

func (s *SQLiteStore) GetShipment(ctx context.Context, id uuid.UUID) (*ShipmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at
		FROM shipments WHERE id = ?`, id.String())

	rec, err := scanShipment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "get shipment", err)
	}
	return rec, nil
}

func (s *SQLiteStore) ListShipments(ctx context.Context, from, to *time.Time) ([]ShipmentRecord, error) {
	query := `
		SELECT id, message, truck_number, from_place, to_place, weight, description, sender_name, created_at
		FROM shipments WHERE 1=1`
	args := []any{}
	if from != nil {
		query += ` AND created_at >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND created_at <= ?`
		args = append(args, *to)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "list shipments", err)
	}
	defer rows.Close()

	var out []ShipmentRecord
	for rows.Next() {
		rec, err := scanShipment(rows.Scan)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "scan shipment", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.logger.Info("closing sqlite store")
	return s.db.Close()
}

// scanShipment reads one row; the id column round-trips through its string
// form since SQLite has no native UUID type.
func scanShipment(scan func(dest ...any) error) (*ShipmentRecord, error) {
	var rec ShipmentRecord
	var id string
	if err := scan(&id, &rec.Message, &rec.TruckNumber, &rec.FromPlace, &rec.ToPlace,
		&rec.Weight, &rec.Description, &rec.SenderName, &rec.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	rec.ID = parsed
	return &rec, nil
}
