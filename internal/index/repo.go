package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/vaultlink/internal/models"
)

// NoteRow represents a row in the notes table.
type NoteRow struct {
	Path      string
	Title     string
	Checksum  string
	Tags      []string
	UpdatedAt time.Time
}

// UpsertNote inserts or replaces a note and its referenceable nodes within a
// transaction. Any Path set on refs is ignored in favour of n.Path.
func (db *DB) UpsertNote(n NoteRow, refs []models.Referenceable) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(n.Tags)
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO notes (path, title, checksum, tags, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			updated_at = excluded.updated_at
	`, n.Path, n.Title, n.Checksum, string(tagsJSON), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM referenceables WHERE path = ?`, n.Path); err != nil {
		return fmt.Errorf("index: clear referenceables: %w", err)
	}
	if len(refs) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO referenceables (path, kind, text, line) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare referenceable insert: %w", err)
		}
		defer stmt.Close()
		for _, r := range refs {
			if _, err := stmt.Exec(n.Path, string(r.Kind), r.Text, r.Line); err != nil {
				return fmt.Errorf("index: insert referenceable: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteNote removes a note and its referenceable nodes.
func (db *DB) DeleteNote(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM referenceables WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete referenceables: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete note: %w", err)
	}

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a note. An unindexed note
// yields "" and a nil error; any other failure is returned.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE path = ?`, path).Scan(&cs)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("index: get checksum %s: %w", path, err)
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// SelectReferenceableNodes enumerates every referenceable node in the index
// as one consistent snapshot. Rows are ordered by path, then line, so the file
// node (line -1) precedes its headings and blocks.
func (db *DB) SelectReferenceableNodes(ctx context.Context) ([]models.Referenceable, error) {
	return db.selectReferenceables(ctx, `
		SELECT path, kind, text, line
		FROM referenceables
		ORDER BY path, line, kind, text
	`)
}

// NoteReferenceables returns the referenceable nodes of a single note.
func (db *DB) NoteReferenceables(ctx context.Context, path string) ([]models.Referenceable, error) {
	return db.selectReferenceables(ctx, `
		SELECT path, kind, text, line
		FROM referenceables
		WHERE path = ?
		ORDER BY line, kind, text
	`, path)
}

func (db *DB) selectReferenceables(ctx context.Context, query string, args ...any) ([]models.Referenceable, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("index: begin read: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: select referenceables: %w", err)
	}
	defer rows.Close()

	var out []models.Referenceable
	for rows.Next() {
		var (
			r    models.Referenceable
			kind string
		)
		if err := rows.Scan(&r.Path, &kind, &r.Text, &r.Line); err != nil {
			return nil, fmt.Errorf("index: scan referenceable: %w", err)
		}
		r.Kind = models.ReferenceableKind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
