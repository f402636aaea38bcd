package book

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"booknetwork/internal/pagination"
	"booknetwork/internal/platform/logger"
	"booknetwork/internal/platform/metrics"
	"booknetwork/internal/policy"

	"github.com/google/uuid"
)

// Service provides book catalog business logic.
type Service struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new book service.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, logger: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a book owned by actor. New books are never archived.
func (s *Service) Create(ctx context.Context, actor policy.Actor, cmd CreateCommand) (Book, error) {
	now := s.now().UTC()
	b := Book{
		ID:         uuid.NewString(),
		OwnerID:    actor.ID,
		Title:      strings.TrimSpace(cmd.Title),
		AuthorName: strings.TrimSpace(cmd.AuthorName),
		ISBN:       strings.TrimSpace(cmd.ISBN),
		Synopsis:   cmd.Synopsis,
		CoverURL:   cmd.CoverURL,
		Shareable:  cmd.Shareable,
		Archived:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	if s.metrics != nil {
		s.metrics.BooksCreated.Inc()
	}
	s.logger.InfoContext(ctx, "book created", "book_id", b.ID, "owner_id", b.OwnerID)
	return b, nil
}

// GetByID returns a book or an apperr.NotFoundError.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// ListDisplayable returns the books actor may browse, newest first.
func (s *Service) ListDisplayable(ctx context.Context, actor policy.Actor, page pagination.Request) (pagination.Page[Book], error) {
	page = page.Normalize()
	books, total, err := s.repo.ListDisplayable(ctx, DisplayableQuery{ViewerID: actor.ID, Page: page})
	if err != nil {
		return pagination.Page[Book]{}, fmt.Errorf("list displayable books: %w", err)
	}
	return pagination.New(books, page, total), nil
}

// ListByOwner returns the books actor owns, newest first.
func (s *Service) ListByOwner(ctx context.Context, actor policy.Actor, page pagination.Request) (pagination.Page[Book], error) {
	page = page.Normalize()
	books, total, err := s.repo.ListByOwner(ctx, OwnerQuery{OwnerID: actor.ID, Page: page})
	if err != nil {
		return pagination.Page[Book]{}, fmt.Errorf("list owner books: %w", err)
	}
	return pagination.New(books, page, total), nil
}

// ToggleShareable flips the shareable flag of a book owned by actor.
func (s *Service) ToggleShareable(ctx context.Context, actor policy.Actor, id string) (string, error) {
	return s.toggle(ctx, actor, id, "toggle_shareable", policy.CanToggleShareable, s.repo.ToggleShareable)
}

// ToggleArchived flips the archived flag of a book owned by actor.
func (s *Service) ToggleArchived(ctx context.Context, actor policy.Actor, id string) (string, error) {
	return s.toggle(ctx, actor, id, "toggle_archived", policy.CanToggleArchived, s.repo.ToggleArchived)
}

func (s *Service) toggle(
	ctx context.Context,
	actor policy.Actor,
	id string,
	action string,
	check func(policy.Actor, policy.BookState) error,
	flip func(context.Context, string) (bool, error),
) (string, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := check(actor, b.State()); err != nil {
		s.metrics.ObserveRejection(action, err)
		s.logger.InfoContext(ctx, "book toggle rejected", "action", action, "book_id", id, "user_id", actor.ID, "error", err)
		return "", err
	}
	value, err := flip(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	s.logger.InfoContext(ctx, "book toggled", "action", action, "book_id", id, "value", value)
	return id, nil
}
