// Package artifact provides the durable hand-off point between the
// compiler and the JIT backend: a SQLite-backed, content-addressed store
// of serialized operator-graph documents. The compiler puts a document
// in once per compilation; the backend picks it up by content id.
package artifact

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tidewater-db/tidewater/internal/graph"
	"github.com/tidewater-db/tidewater/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no document exists for a content id.
var ErrNotFound = errors.New("artifact: document not found")

// Record describes one stored document.
type Record struct {
	ContentID string
	RecordID  string
	IRVersion string
	CreatedAt time.Time
}

// Store provides durable storage for serialized graph documents.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically; safe to call
// on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY errors under concurrent puts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Put stores a serialized document and returns its content id. Puts are
// idempotent: storing the same bytes twice keeps the first record and
// returns the same id.
func (s *Store) Put(ctx context.Context, document []byte) (string, error) {
	contentID := graph.DocumentID(document)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO graphs (content_id, record_id, ir_version, document, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_id) DO NOTHING
	`,
		contentID,
		uuid.NewString(),
		ir.IRVersion,
		document,
		time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("put document: %w", err)
	}
	return contentID, nil
}

// Get returns the stored document bytes for a content id.
// Returns ErrNotFound when no such document exists.
func (s *Store) Get(ctx context.Context, contentID string) ([]byte, error) {
	var document []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM graphs WHERE content_id = ?`, contentID,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return document, nil
}

// List returns the stored records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content_id, record_id, ir_version, created_at
		FROM graphs ORDER BY created_at DESC, content_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt int64
		if err := rows.Scan(&rec.ContentID, &rec.RecordID, &rec.IRVersion, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
