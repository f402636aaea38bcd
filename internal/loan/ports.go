package loan

import (
	"context"
	"time"

	"booknetwork/internal/book"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=loan

// Repository stores borrow records.
type Repository interface {
	// WithinBook runs fn with exclusive access to the ledger of bookID. Every
	// check-then-write sequence on a book must go through it.
	WithinBook(ctx context.Context, bookID string, fn func(ctx context.Context, tx Tx) error) error
	HasOpenLoan(ctx context.Context, bookID string) (bool, error)
	ListBorrowed(ctx context.Context, q BorrowedQuery) ([]Record, int, error)
	ListReturned(ctx context.Context, q ReturnedQuery) ([]Record, int, error)
}

// Tx is the view of the ledger available inside WithinBook.
type Tx interface {
	HasOpenLoan(ctx context.Context, bookID string) (bool, error)
	// FindOpen returns the open record of bookID held by borrowerID.
	FindOpen(ctx context.Context, bookID, borrowerID string) (Record, bool, error)
	// FindPendingReturn returns the oldest returned but unapproved record.
	FindPendingReturn(ctx context.Context, bookID string) (Record, bool, error)
	// Insert fails with apperr.ErrAlreadyBorrowed when the book already has
	// an open record.
	Insert(ctx context.Context, rec *Record) error
	MarkReturned(ctx context.Context, id string, at time.Time) error
	MarkReturnApproved(ctx context.Context, id string, at time.Time) error
}

// BookReader resolves the catalog entry a ledger operation targets.
type BookReader interface {
	GetByID(ctx context.Context, id string) (book.Book, error)
}
