package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/pagination"
	"booknetwork/internal/platform/logger"
	"booknetwork/internal/platform/metrics"
	"booknetwork/internal/policy"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	books   BookReader
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

func NewService(repo Repository, books BookReader, opts ...Option) *Service {
	s := &Service{repo: repo, books: books, logger: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a feedback from actor once the book accepts it.
func (s *Service) Create(ctx context.Context, actor policy.Actor, cmd CreateCommand) (Feedback, error) {
	if math.IsNaN(cmd.Rating) || cmd.Rating < MinRating || cmd.Rating > MaxRating {
		return Feedback{}, apperr.Invalid("rating", fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	comment := strings.TrimSpace(cmd.Comment)
	if comment == "" {
		return Feedback{}, apperr.Invalid("comment", "comment is required")
	}

	b, err := s.books.GetByID(ctx, cmd.BookID)
	if err != nil {
		return Feedback{}, err
	}
	if err := policy.CanGiveFeedback(actor, b.State()); err != nil {
		s.metrics.ObserveRejection("feedback", err)
		s.logger.InfoContext(ctx, "feedback rejected", "book_id", b.ID, "user_id", actor.ID, "error", err)
		return Feedback{}, err
	}

	f := Feedback{
		ID:        uuid.NewString(),
		BookID:    b.ID,
		AuthorID:  actor.ID,
		Rating:    cmd.Rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &f); err != nil {
		return Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	if s.metrics != nil {
		s.metrics.FeedbacksCreated.Inc()
	}
	s.logger.InfoContext(ctx, "feedback created", "feedback_id", f.ID, "book_id", f.BookID, "user_id", actor.ID)
	return f, nil
}

// ListByBook returns the feedbacks of bookID, newest first, flagging the
// ones actor wrote.
func (s *Service) ListByBook(ctx context.Context, actor policy.Actor, bookID string, page pagination.Request) (pagination.Page[View], error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return pagination.Page[View]{}, err
	}

	page = page.Normalize()
	items, total, err := s.repo.ListByBook(ctx, BookQuery{BookID: bookID, Page: page})
	if err != nil {
		return pagination.Page[View]{}, fmt.Errorf("list feedbacks: %w", err)
	}
	return pagination.Map(pagination.New(items, page, total), func(f Feedback) View {
		return View{
			ID:          f.ID,
			Rating:      f.Rating,
			Comment:     f.Comment,
			OwnFeedback: f.AuthorID == actor.ID,
			CreatedAt:   f.CreatedAt,
		}
	}), nil
}

// Summary returns the average rating of bookID rounded to one decimal.
func (s *Service) Summary(ctx context.Context, bookID string) (Summary, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return Summary{}, err
	}
	sum, err := s.repo.Summary(ctx, bookID)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize feedbacks: %w", err)
	}
	sum.BookID = bookID
	sum.Average = math.Round(sum.Average*10) / 10
	return sum, nil
}
