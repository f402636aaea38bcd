package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
// GetByID returns an apperr.NotFoundError for unknown ids.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	ListDisplayable(ctx context.Context, q DisplayableQuery) ([]Book, int, error)
	ListByOwner(ctx context.Context, q OwnerQuery) ([]Book, int, error)
	// ToggleShareable and ToggleArchived flip the flag in a single atomic
	// step and return the new value.
	ToggleShareable(ctx context.Context, id string) (bool, error)
	ToggleArchived(ctx context.Context, id string) (bool, error)
}
