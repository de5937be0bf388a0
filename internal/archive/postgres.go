package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/evenlyhq/receiptlens/internal/common"
	"github.com/evenlyhq/receiptlens/internal/engine"
)

// PostgresArchive implements Archive on Postgres for shared deployments.
type PostgresArchive struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresArchive(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS receipt_archive (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			confidence REAL NOT NULL,
			record     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresArchive{db: db, logger: logger}, nil
}

func (a *PostgresArchive) SaveEntry(ctx context.Context, e *Entry) error {
	record, err := json.Marshal(e.Record)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
		INSERT INTO receipt_archive (id, source, confidence, record, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET source = EXCLUDED.source,
		    confidence = EXCLUDED.confidence,
		    record = EXCLUDED.record
	`, e.ID, e.Source, e.Confidence, record, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (a *PostgresArchive) GetEntry(ctx context.Context, id string) (*Entry, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, source, confidence, record, created_at
		FROM receipt_archive
		WHERE id = $1
	`, id)
	e, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return e, nil
}

func (a *PostgresArchive) ListEntries(ctx context.Context) ([]*Entry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, source, confidence, record, created_at
		FROM receipt_archive
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*Entry, 0, 64)
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (a *PostgresArchive) Close() error {
	return a.db.Close()
}

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var record []byte
	if err := scan(&e.ID, &e.Source, &e.Confidence, &record, &e.CreatedAt); err != nil {
		return nil, err
	}
	var rec engine.ReceiptRecord
	if err := json.Unmarshal(record, &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling record: %w", err)
	}
	e.Record = rec
	return &e, nil
}
