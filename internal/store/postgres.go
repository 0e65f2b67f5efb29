package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Serialise migrations when several server replicas start together.
	const lockID = 5001

	// Session-level locks belong to one connection, so pin one for the whole migration.
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get migration connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS summary_requests (
			id UUID PRIMARY KEY,
			video_id TEXT NOT NULL,
			status TEXT NOT NULL,
			transcript_language TEXT,
			available_languages TEXT[],
			transcript_chars INT,
			cached BOOLEAN NOT NULL DEFAULT false,
			duration_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS summary_requests_created_at_idx ON summary_requests (created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) RecordRequest(ctx context.Context, rec RequestRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summary_requests
			(id, video_id, status, transcript_language, available_languages, transcript_chars, cached, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.VideoID, string(rec.Status), rec.TranscriptLanguage, pq.Array(rec.AvailableLanguages),
		rec.TranscriptChars, rec.Cached, rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary request: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentRequests(ctx context.Context, limit int) ([]RequestRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, video_id, status, COALESCE(transcript_language, ''), available_languages,
			COALESCE(transcript_chars, 0), cached, duration_ms, created_at
		FROM summary_requests
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RequestRecord
	for rows.Next() {
		var (
			rec        RequestRecord
			status     string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.VideoID, &status, &rec.TranscriptLanguage, pq.Array(&rec.AvailableLanguages),
			&rec.TranscriptChars, &rec.Cached, &durationMS, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Status = RequestStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
