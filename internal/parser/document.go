package parser

import (
	"path/filepath"
	"strings"

	"github.com/starford/othala/internal/models"
)

// ToDocument parses raw Markdown bytes into a Document for the file at the
// given content-relative path. The identifier is the frontmatter "id" when
// present, otherwise the path without its .md extension. Checksum and
// UpdatedAt are left for the caller; so is validation.
func ToDocument(path string, data []byte) (models.Document, error) {
	res, err := Parse(data)
	if err != nil {
		return models.Document{}, err
	}
	id := res.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.ToSlash(path), ".md")
	}
	return models.Document{
		ID:        id,
		Path:      path,
		Title:     res.Title,
		Body:      res.Body,
		Published: res.Published,
		Draft:     res.Draft,
		Tags:      res.Tags,
		Category:  res.Category,
	}, nil
}
