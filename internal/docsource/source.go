// Package docsource exposes the indexed content set as a bulk document
// source for view building.
package docsource

import (
	"context"

	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/models"
)

// Predicate decides whether a document is included in a bulk read.
type Predicate func(models.Document) bool

// Source is the read side consumed by the aggregator: a single bulk
// retrieval of every document in canonical source order (path ascending).
// A retrieval error means no documents at all; callers never receive a
// partial set.
type Source interface {
	GetAll(ctx context.Context, pred Predicate) ([]models.Document, error)
}

// IndexSource implements Source on top of the SQLite document index.
type IndexSource struct {
	db index.DocumentIndex
}

// NewIndexSource creates a Source backed by the given index.
func NewIndexSource(db index.DocumentIndex) *IndexSource {
	return &IndexSource{db: db}
}

// GetAll returns every indexed document, filtered by pred when non-nil.
func (s *IndexSource) GetAll(ctx context.Context, pred Predicate) ([]models.Document, error) {
	docs, err := s.db.AllDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return docs, nil
	}
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out, nil
}
