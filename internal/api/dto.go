package api

import (
	"github.com/starford/othala/internal/aggregate"
	"github.com/starford/othala/internal/docservice"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Content string `json:"content" example:"---\ntitle: Hello\ndate: 2024-01-01\n---\nWorld" validate:"required"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Content string `json:"content" example:"---\ntitle: Updated\ndate: 2024-01-01\n---\nContent" validate:"required"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// PostResponse is a single published post with rendered HTML and neighbour links.
type PostResponse = docservice.Post

// PostListResponse wraps the chronological post sequence.
type PostListResponse struct {
	Posts []aggregate.ChronEntry `json:"posts" validate:"required"`
}

// ArchiveResponse wraps the year index, newest year first.
type ArchiveResponse struct {
	Years []aggregate.YearBucket `json:"years" validate:"required"`
}

// GroupListResponse wraps the tag or category index keyed by slug.
type GroupListResponse struct {
	Groups map[string]*aggregate.Group `json:"groups" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"notes/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// MediaUploadResponse is returned after a successful media upload.
type MediaUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/media/image.png" validate:"required"`
}
