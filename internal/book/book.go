package book

import (
	"time"

	"booknetwork/internal/pagination"
	"booknetwork/internal/policy"
)

// Book is a catalog entry. OwnerID is fixed when the book is created.
type Book struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	ISBN       string    `json:"isbn"`
	Synopsis   string    `json:"synopsis,omitempty"`
	CoverURL   *string   `json:"cover_url,omitempty"`
	Shareable  bool      `json:"shareable"`
	Archived   bool      `json:"archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// State returns the snapshot the lending policy decides on.
func (b Book) State() policy.BookState {
	return policy.BookState{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Shareable: b.Shareable,
		Archived:  b.Archived,
	}
}

// CreateCommand carries the fields a user supplies for a new book.
type CreateCommand struct {
	Title      string  `json:"title" validate:"required,max=255"`
	AuthorName string  `json:"author_name" validate:"required,max=255"`
	ISBN       string  `json:"isbn" validate:"required,isbn"`
	Synopsis   string  `json:"synopsis" validate:"max=4000"`
	CoverURL   *string `json:"cover_url,omitempty" validate:"omitempty,url"`
	Shareable  bool    `json:"shareable"`
}

// DisplayableQuery lists books a viewer may browse: shareable, not archived
// and not owned by the viewer.
type DisplayableQuery struct {
	ViewerID string
	Page     pagination.Request
}

// OwnerQuery lists every book owned by OwnerID.
type OwnerQuery struct {
	OwnerID string
	Page    pagination.Request
}
