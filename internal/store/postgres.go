package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/clearcomp/claimdate/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id              TEXT PRIMARY KEY,
	ticket_id       BIGINT NOT NULL,
	date            DATE,
	confidence      TEXT NOT NULL,
	source          TEXT NOT NULL,
	method          TEXT NOT NULL,
	source_text     TEXT,
	ai_reasoning    TEXT,
	requires_review BOOLEAN NOT NULL DEFAULT false,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_extractions_ticket_id ON extractions(ticket_id);
CREATE INDEX IF NOT EXISTS idx_extractions_method ON extractions(method);
CREATE INDEX IF NOT EXISTS idx_extractions_review ON extractions(requires_review);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveExtraction(ctx context.Context, rec model.ExtractionRecord) error {
	var date *time.Time
	if rec.Date != nil {
		d := rec.Date.UTC()
		date = &d
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO extractions (id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.TicketID, date, string(rec.Confidence), string(rec.Source), string(rec.Method),
		rec.SourceText, rec.AIReasoning, rec.RequiresReview, rec.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "postgres: insert extraction")
}

func (s *PostgresStore) GetExtraction(ctx context.Context, id string) (*model.ExtractionRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at
		 FROM extractions WHERE id = $1`, id)

	rec, err := scanPgExtraction(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get extraction")
	}
	return rec, nil
}

func (s *PostgresStore) ListExtractions(ctx context.Context, filter Filter) ([]model.ExtractionRecord, error) {
	query := `SELECT id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at FROM extractions`
	var conds []string
	var args []any

	if filter.TicketID != 0 {
		args = append(args, filter.TicketID)
		conds = append(conds, fmt.Sprintf("ticket_id = $%d", len(args)))
	}
	if filter.Method != "" {
		args = append(args, string(filter.Method))
		conds = append(conds, fmt.Sprintf("method = $%d", len(args)))
	}
	if filter.RequiresReview != nil {
		args = append(args, *filter.RequiresReview)
		conds = append(conds, fmt.Sprintf("requires_review = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list extractions")
	}
	defer rows.Close()

	var recs []model.ExtractionRecord
	for rows.Next() {
		rec, err := scanPgExtraction(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan extraction")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "postgres: list extractions")
}

func (s *PostgresStore) CountByMethod(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT method, COUNT(*) FROM extractions GROUP BY method`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: count by method")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[method] = n
	}
	return counts, eris.Wrap(rows.Err(), "postgres: count by method")
}

func scanPgExtraction(scan func(dest ...any) error) (*model.ExtractionRecord, error) {
	var rec model.ExtractionRecord
	var date *time.Time
	var sourceText, aiReasoning *string

	err := scan(&rec.ID, &rec.TicketID, &date, (*string)(&rec.Confidence), (*string)(&rec.Source),
		(*string)(&rec.Method), &sourceText, &aiReasoning, &rec.RequiresReview, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if date != nil {
		d := date.UTC()
		rec.Date = &d
	}
	if sourceText != nil {
		rec.SourceText = *sourceText
	}
	if aiReasoning != nil {
		rec.AIReasoning = *aiReasoning
	}
	return &rec, nil
}
