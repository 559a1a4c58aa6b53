// Package store persists parse records in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("statement not found")

// HistoryLimit caps how many records the history listing returns.
const HistoryLimit = 50

const schemaSQL = `
CREATE TABLE IF NOT EXISTS parsed_statements (
    id               TEXT PRIMARY KEY,
    filename         TEXT NOT NULL,
    issuer           TEXT NOT NULL,
    card_last_four   TEXT,
    billing_cycle    TEXT,
    due_date         TEXT,
    total_amount_due TEXT,
    confidence_score REAL NOT NULL,
    raw_text         TEXT,
    created_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parsed_statements_created_at ON parsed_statements(created_at);
`

// Store wraps the statements database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the
// schema. Use ":memory:" for an ephemeral database in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a parse record.
func (s *Store) Save(stmt *models.ParsedStatement) error {
	_, err := s.db.Exec(`
		INSERT INTO parsed_statements
			(id, filename, issuer, card_last_four, billing_cycle, due_date,
			 total_amount_due, confidence_score, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stmt.ID, stmt.Filename, stmt.Issuer, stmt.CardLastFour,
		stmt.BillingCycle, stmt.DueDate, stmt.TotalAmountDue,
		stmt.ConfidenceScore, stmt.RawText, stmt.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting statement: %w", err)
	}
	return nil
}

// GetByID fetches a single record, or ErrNotFound.
func (s *Store) GetByID(id string) (*models.ParsedStatement, error) {
	row := s.db.QueryRow(`
		SELECT id, filename, issuer, card_last_four, billing_cycle, due_date,
		       total_amount_due, confidence_score, raw_text, created_at
		FROM parsed_statements WHERE id = ?`, id)

	stmt, err := scanStatement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying statement: %w", err)
	}
	return stmt, nil
}

// Recent returns the most recent records, newest first. limit is capped
// at HistoryLimit; zero or negative means the full cap.
func (s *Store) Recent(limit int) ([]*models.ParsedStatement, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	rows, err := s.db.Query(`
		SELECT id, filename, issuer, card_last_four, billing_cycle, due_date,
		       total_amount_due, confidence_score, raw_text, created_at
		FROM parsed_statements ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var statements []*models.ParsedStatement
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning statement: %w", err)
		}
		statements = append(statements, stmt)
	}
	return statements, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStatement(sc scanner) (*models.ParsedStatement, error) {
	var stmt models.ParsedStatement
	var cardLastFour, billingCycle, dueDate, totalAmountDue, rawText sql.NullString
	var createdAt string

	err := sc.Scan(&stmt.ID, &stmt.Filename, &stmt.Issuer, &cardLastFour,
		&billingCycle, &dueDate, &totalAmountDue, &stmt.ConfidenceScore,
		&rawText, &createdAt)
	if err != nil {
		return nil, err
	}

	stmt.CardLastFour = cardLastFour.String
	stmt.BillingCycle = billingCycle.String
	stmt.DueDate = dueDate.String
	stmt.TotalAmountDue = totalAmountDue.String
	stmt.RawText = rawText.String
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		stmt.CreatedAt = t
	}
	return &stmt, nil
}
