package feedback

import (
	"context"
	"time"

	"booknetwork/internal/book"
	"booknetwork/internal/pagination"
)

const (
	MinRating = 0
	MaxRating = 5
)

// Feedback is a rating and comment left by a non owner. It never changes
// after creation.
type Feedback struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	AuthorID  string    `json:"author_id"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// View is a feedback as listed to a given actor.
type View struct {
	ID          string    `json:"id"`
	Rating      float64   `json:"rating"`
	Comment     string    `json:"comment"`
	OwnFeedback bool      `json:"own_feedback"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary aggregates the ratings of one book.
type Summary struct {
	BookID  string  `json:"book_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type CreateCommand struct {
	BookID  string  `json:"book_id" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"required,max=2000"`
}

// BookQuery lists the feedbacks of one book.
type BookQuery struct {
	BookID string
	Page   pagination.Request
}

//go:generate mockgen -source=feedback.go -destination=mock_repository.go -package=feedback

type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	ListByBook(ctx context.Context, q BookQuery) ([]Feedback, int, error)
	Summary(ctx context.Context, bookID string) (Summary, error)
}

// BookReader resolves the book a feedback targets.
type BookReader interface {
	GetByID(ctx context.Context, id string) (book.Book, error)
}
