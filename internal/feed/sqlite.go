package feed

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteSource reads a feed snapshot previously stored with SaveDocuments.
type SQLiteSource struct {
	DB   *sql.DB
	Path string
}

func NewSQLite(db *sql.DB, path string) *SQLiteSource {
	return &SQLiteSource{DB: db, Path: path}
}

func (s *SQLiteSource) Name() string { return "sqlite:" + s.Path }

func (s *SQLiteSource) Load(ctx context.Context) (Documents, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT name, body FROM raw_documents`)
	if err != nil {
		return Documents{}, fmt.Errorf("%w: query raw_documents: %v", ErrLoad, err)
	}
	defer rows.Close()

	var docs Documents
	found := make(map[string]bool, len(DocumentNames))
	for rows.Next() {
		var (
			name string
			body []byte
		)
		if err := rows.Scan(&name, &body); err != nil {
			return Documents{}, fmt.Errorf("%w: scan raw_documents: %v", ErrLoad, err)
		}
		if !IsKnown(name) {
			continue
		}
		if err := checkJSON(name, body); err != nil {
			return Documents{}, err
		}
		docs.set(name, body)
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return Documents{}, fmt.Errorf("%w: rows raw_documents: %v", ErrLoad, err)
	}

	for _, name := range DocumentNames {
		if !found[name] {
			return Documents{}, loadError(name, fmt.Errorf("not in snapshot"))
		}
	}
	return docs, nil
}

// SaveDocuments replaces the stored snapshot with docs in one transaction.
func SaveDocuments(ctx context.Context, db *sql.DB, docs Documents) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO raw_documents (name, body, imported_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
		  body = excluded.body,
		  imported_at = excluded.imported_at
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, name := range DocumentNames {
		body, _ := docs.Get(name)
		if body == nil {
			body = []byte{}
		}
		if _, err := stmt.ExecContext(ctx, name, body); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
