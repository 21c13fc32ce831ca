package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/slug"
)

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// Sort fields accepted by ListDocuments.
var listSortColumns = map[string]string{
	"":           "published DESC",
	"published":  "published DESC",
	"title":      "title COLLATE NOCASE ASC",
	"path":       "path ASC",
	"updated_at": "updated_at DESC",
}

// UpsertDocument inserts or replaces a document and its FTS entry within a
// transaction. The slug column is derived from the document identifier.
func (db *DB) UpsertDocument(d models.Document) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(d.Tags)

	_, err = tx.Exec(`
		INSERT INTO documents (path, doc_id, slug, title, published, draft, tags, category, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			doc_id     = excluded.doc_id,
			slug       = excluded.slug,
			title      = excluded.title,
			published  = excluded.published,
			draft      = excluded.draft,
			tags       = excluded.tags,
			category   = excluded.category,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, d.Path, d.ID, slug.Make(d.ID), d.Title, d.Published, d.Draft,
		string(tagsJSON), d.Category, d.Checksum, d.Body, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Path, d.Title, d.Body, d.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its FTS entry.
func (db *DB) DeleteDocument(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM documents WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a document, or empty string if
// not indexed.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM documents WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns a path -> checksum map for every indexed document.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM documents`)
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

const docColumns = `path, doc_id, title, published, draft, tags, category, checksum, updated_at`

// GetDocument returns the full document (including body) at path, or
// sql.ErrNoRows wrapped if it is not indexed.
func (db *DB) GetDocument(path string) (*models.Document, error) {
	row := db.conn.QueryRow(`SELECT `+docColumns+`, body FROM documents WHERE path = ?`, path)
	return scanDocumentWithBody(row, "path", path)
}

// GetBySlug returns the full document whose identifier slug matches.
func (db *DB) GetBySlug(s string) (*models.Document, error) {
	row := db.conn.QueryRow(`SELECT `+docColumns+`, body FROM documents WHERE slug = ?`, s)
	return scanDocumentWithBody(row, "slug", s)
}

func scanDocumentWithBody(row *sql.Row, key, val string) (*models.Document, error) {
	var d models.Document
	var tagsJSON string
	err := row.Scan(&d.Path, &d.ID, &d.Title, &d.Published, &d.Draft,
		&tagsJSON, &d.Category, &d.Checksum, &d.UpdatedAt, &d.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: no document with %s %q: %w", key, val, err)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	decodeTags(&d, tagsJSON)
	return &d, nil
}

// AllDocuments returns the metadata of every indexed document in canonical
// source order (path ascending, so iteration order is stable across calls).
// Bodies are not loaded; view building does not need them.
func (db *DB) AllDocuments(ctx context.Context) ([]models.Document, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+docColumns+` FROM documents ORDER BY path ASC`)
	if err != nil {
		return nil, fmt.Errorf("index: all documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		var tagsJSON string
		if err := rows.Scan(&d.Path, &d.ID, &d.Title, &d.Published, &d.Draft,
			&tagsJSON, &d.Category, &d.Checksum, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("index: scan document: %w", err)
		}
		decodeTags(&d, tagsJSON)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDocuments returns paginated document metadata with optional tag and
// category filters. Drafts are included; this is the authoring surface, not
// a published view.
func (db *DB) ListDocuments(limit, offset int, tag, category, sortBy string) ([]models.Document, int, error) {
	order, ok := listSortColumns[sortBy]
	if !ok {
		return nil, 0, fmt.Errorf("index: unknown sort field %q", sortBy)
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := "1=1"
	var args []interface{}
	if tag != "" {
		// Tags are stored as a JSON array of strings; match the quoted element.
		where += ` AND tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count documents: %w", err)
	}

	query := `SELECT ` + docColumns + ` FROM documents WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		var tagsJSON string
		if err := rows.Scan(&d.Path, &d.ID, &d.Title, &d.Published, &d.Draft,
			&tagsJSON, &d.Category, &d.Checksum, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("index: scan document: %w", err)
		}
		decodeTags(&d, tagsJSON)
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func decodeTags(d *models.Document, tagsJSON string) {
	if tagsJSON == "" || tagsJSON == "null" {
		return
	}
	_ = json.Unmarshal([]byte(tagsJSON), &d.Tags)
}
