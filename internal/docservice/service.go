// Package docservice coordinates storage, index, and aggregation for the
// serving layers (HTTP API and MCP).
package docservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/starford/othala/internal/aggregate"
	"github.com/starford/othala/internal/apperr"
	"github.com/starford/othala/internal/docsource"
	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/parser"
	"github.com/starford/othala/internal/render"
	"github.com/starford/othala/internal/storage"
)

// DocumentDetail is the full authoring representation of a document.
type DocumentDetail struct {
	Path        string         `json:"path"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Checksum    string         `json:"checksum"`
	Published   time.Time      `json:"published"`
	Draft       bool           `json:"draft"`
	Tags        []string       `json:"tags"`
	Category    string         `json:"category,omitempty"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	Path      string    `json:"path"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Published time.Time `json:"published"`
	Draft     bool      `json:"draft"`
	Tags      []string  `json:"tags"`
	Category  string    `json:"category,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is a published document prepared for rendering: its chronological
// entry (with prev/next links) plus the HTML body.
type Post struct {
	aggregate.ChronEntry
	HTML string `json:"html"`
}

// Service coordinates storage and index operations and exposes the derived
// site views. production is fixed at construction (the call boundary) and
// threaded explicitly into every view build.
type Service struct {
	store      storage.Provider
	db         index.DocumentIndex
	source     docsource.Source
	production bool
}

// NewService creates a new document service.
func NewService(store storage.Provider, db index.DocumentIndex, source docsource.Source, production bool) *Service {
	return &Service{store: store, db: db, source: source, production: production}
}

// GetDocument reads a document from storage and parses it. This is the
// authoring surface; it returns the raw content and does not enforce the
// publishing contract.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return buildDetail(path, data)
}

// CreateDocument writes a new document and indexes it. The content must
// satisfy the publishing contract (title and date present).
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*DocumentDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.validateContent(path, content); err != nil {
		return nil, err
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return buildDetail(path, content)
}

// UpdateDocument writes updated content with optimistic concurrency: when
// ifMatch is non-empty it must equal the checksum of the stored content.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*DocumentDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != storage.Checksum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.validateContent(path, content); err != nil {
		return nil, err
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return buildDetail(path, content)
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns paginated documents with optional tag and category
// filters. Drafts are included regardless of environment; this is the
// authoring surface, not a published view.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, tag, category, sort string) ([]DocumentListItem, int, error) {
	docs, total, err := s.db.ListDocuments(limit, offset, tag, category, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(docs))
	for i, d := range docs {
		items[i] = DocumentListItem{
			Path:      d.Path,
			ID:        d.ID,
			Title:     d.Title,
			Checksum:  d.Checksum,
			Published: d.Published,
			Draft:     d.Draft,
			Tags:      nonNilSlice(d.Tags),
			Category:  d.Category,
			UpdatedAt: d.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Views rebuilds all four derived views from the document source. Nothing is
// cached between calls.
func (s *Service) Views(ctx context.Context) (*aggregate.Views, error) {
	return aggregate.Build(ctx, s.source, s.production)
}

// GetPost returns a published document by slug, with its rendered HTML body
// and prev/next navigation from the chronological sequence. A draft is not
// found in production.
func (s *Service) GetPost(ctx context.Context, slug string) (*Post, error) {
	views, err := s.Views(ctx)
	if err != nil {
		return nil, err
	}
	location := "/notes/" + slug
	for _, entry := range views.Chronology {
		if entry.Location != location {
			continue
		}
		doc, err := s.db.GetDocument(entry.Path)
		if err != nil {
			return nil, err
		}
		html, err := render.HTML(doc.Body)
		if err != nil {
			return nil, err
		}
		return &Post{ChronEntry: entry, HTML: html}, nil
	}
	return nil, apperr.ErrNotFound
}

// IndexFile parses data and upserts it into the index.
// Exported so that serving layers can index after out-of-band writes.
func (s *Service) IndexFile(path string, data []byte) error {
	doc, err := parser.ToDocument(path, data)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", apperr.ErrInvalidDocument, path, err)
	}
	doc.Checksum = storage.Checksum(data)
	doc.UpdatedAt = time.Now()
	return s.db.UpsertDocument(doc)
}

// validateContent rejects content that breaks the publishing contract
// before anything is written to disk.
func (s *Service) validateContent(path string, content []byte) error {
	doc, err := parser.ToDocument(path, content)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidDocument, err)
	}
	return nil
}

// buildDetail constructs a DocumentDetail from raw data without re-reading
// the file.
func buildDetail(path string, data []byte) (*DocumentDetail, error) {
	doc, err := parser.ToDocument(path, data)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return &DocumentDetail{
		Path:        path,
		ID:          doc.ID,
		Title:       doc.Title,
		Content:     string(data),
		Checksum:    storage.Checksum(data),
		Published:   doc.Published,
		Draft:       doc.Draft,
		Tags:        nonNilSlice(doc.Tags),
		Category:    doc.Category,
		Frontmatter: res.Frontmatter,
		UpdatedAt:   time.Now(),
	}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
