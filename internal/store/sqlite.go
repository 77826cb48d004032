package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/clearcomp/claimdate/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS extractions (
	id              TEXT PRIMARY KEY,
	ticket_id       INTEGER NOT NULL,
	date            TEXT,
	confidence      TEXT NOT NULL,
	source          TEXT NOT NULL,
	method          TEXT NOT NULL,
	source_text     TEXT,
	ai_reasoning    TEXT,
	requires_review INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_extractions_ticket_id ON extractions(ticket_id);
CREATE INDEX IF NOT EXISTS idx_extractions_method ON extractions(method);
CREATE INDEX IF NOT EXISTS idx_extractions_review ON extractions(requires_review);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveExtraction(ctx context.Context, rec model.ExtractionRecord) error {
	var date any
	if rec.Date != nil {
		date = rec.Date.Format("2006-01-02")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extractions (id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TicketID, date, string(rec.Confidence), string(rec.Source), string(rec.Method),
		rec.SourceText, rec.AIReasoning, boolToInt(rec.RequiresReview), rec.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "sqlite: insert extraction")
}

func (s *SQLiteStore) GetExtraction(ctx context.Context, id string) (*model.ExtractionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at
		 FROM extractions WHERE id = ?`, id)

	rec, err := scanExtraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get extraction")
	}
	return rec, nil
}

func (s *SQLiteStore) ListExtractions(ctx context.Context, filter Filter) ([]model.ExtractionRecord, error) {
	query := `SELECT id, ticket_id, date, confidence, source, method, source_text, ai_reasoning, requires_review, created_at FROM extractions`
	var conds []string
	var args []any

	if filter.TicketID != 0 {
		conds = append(conds, "ticket_id = ?")
		args = append(args, filter.TicketID)
	}
	if filter.Method != "" {
		conds = append(conds, "method = ?")
		args = append(args, string(filter.Method))
	}
	if filter.RequiresReview != nil {
		conds = append(conds, "requires_review = ?")
		args = append(args, boolToInt(*filter.RequiresReview))
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

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list extractions")
	}
	defer rows.Close()

	var recs []model.ExtractionRecord
	for rows.Next() {
		rec, err := scanExtraction(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan extraction")
		}
		recs = append(recs, *rec)
	}
	return recs, eris.Wrap(rows.Err(), "sqlite: list extractions")
}

func (s *SQLiteStore) CountByMethod(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT method, COUNT(*) FROM extractions GROUP BY method`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: count by method")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan count")
		}
		counts[method] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: count by method")
}

// scanExtraction decodes one extraction row via the given scan function.
func scanExtraction(scan func(dest ...any) error) (*model.ExtractionRecord, error) {
	var rec model.ExtractionRecord
	var date sql.NullString
	var sourceText, aiReasoning sql.NullString
	var review int

	err := scan(&rec.ID, &rec.TicketID, &date, (*string)(&rec.Confidence), (*string)(&rec.Source),
		(*string)(&rec.Method), &sourceText, &aiReasoning, &review, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if date.Valid && date.String != "" {
		if d, perr := time.Parse("2006-01-02", date.String); perr == nil {
			d = d.UTC()
			rec.Date = &d
		}
	}
	rec.SourceText = sourceText.String
	rec.AIReasoning = aiReasoning.String
	rec.RequiresReview = review != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
