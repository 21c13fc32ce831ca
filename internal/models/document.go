// Package models defines the domain types for Othala.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document represents a single published content item (post or note): a
// Markdown file with YAML frontmatter carrying its publishing metadata.
type Document struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Published time.Time `json:"published"`
	Draft     bool      `json:"draft,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Category  string    `json:"category,omitempty"`
	Checksum  string    `json:"checksum,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the document source contract: a document must carry an
// identifier, a title, and a publication date. A document without a
// publication date is not valid input anywhere downstream.
func (d Document) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Published, validation.Required, validation.By(notZeroTime)),
	)
}

func notZeroTime(value interface{}) error {
	t, _ := value.(time.Time)
	if t.IsZero() {
		return validation.NewError("validation_required", "publication date is required")
	}
	return nil
}

// DocumentMetadata is a lightweight representation returned by list operations.
type DocumentMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
