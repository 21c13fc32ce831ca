package index

import (
	"context"

	"github.com/starford/othala/internal/models"
)

// DocumentIndex defines the interface for document indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type DocumentIndex interface {
	UpsertDocument(d models.Document) error
	DeleteDocument(path string) error
	GetChecksum(path string) (string, error)
	GetDocument(path string) (*models.Document, error)
	GetBySlug(slug string) (*models.Document, error)
	AllDocuments(ctx context.Context) ([]models.Document, error)
	ListDocuments(limit, offset int, tag, category, sort string) ([]models.Document, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
