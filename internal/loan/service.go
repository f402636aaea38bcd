package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/pagination"
	"booknetwork/internal/platform/logger"
	"booknetwork/internal/platform/metrics"
	"booknetwork/internal/policy"

	"github.com/google/uuid"
)

// Service runs the borrow, return and approval workflow.
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

// HasOpenLoan reports whether any borrower currently holds bookID.
func (s *Service) HasOpenLoan(ctx context.Context, bookID string) (bool, error) {
	return s.repo.HasOpenLoan(ctx, bookID)
}

// Borrow opens a loan of bookID for actor. The open loan check and the
// insert run in the same critical section. The book snapshot is read before
// entering it; only the ledger needs per-book atomicity.
func (s *Service) Borrow(ctx context.Context, actor policy.Actor, bookID string) (Record, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = s.repo.WithinBook(ctx, bookID, func(ctx context.Context, tx Tx) error {
		open, err := tx.HasOpenLoan(ctx, bookID)
		if err != nil {
			return fmt.Errorf("check open loan: %w", err)
		}
		if err := policy.CanBorrow(actor, b.State(), open); err != nil {
			return err
		}

		now := s.now().UTC()
		rec = Record{
			ID:         uuid.NewString(),
			BookID:     bookID,
			OwnerID:    b.OwnerID,
			BorrowerID: actor.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.Insert(ctx, &rec)
	})
	if err != nil {
		return Record{}, s.reject(ctx, "borrow", actor, bookID, err)
	}

	if s.metrics != nil {
		s.metrics.LoansOpened.Inc()
	}
	s.logger.InfoContext(ctx, "book borrowed", "book_id", bookID, "user_id", actor.ID, "record_id", rec.ID)
	return rec, nil
}

// Return moves the actor's open loan of bookID to RETURNED.
func (s *Service) Return(ctx context.Context, actor policy.Actor, bookID string) (Record, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = s.repo.WithinBook(ctx, bookID, func(ctx context.Context, tx Tx) error {
		found, held, err := tx.FindOpen(ctx, bookID, actor.ID)
		if err != nil {
			return fmt.Errorf("find open loan: %w", err)
		}
		if err := policy.CanReturn(actor, b.State(), held); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := tx.MarkReturned(ctx, found.ID, now); err != nil {
			return err
		}
		found.Returned = true
		found.UpdatedAt = now
		rec = found
		return nil
	})
	if err != nil {
		return Record{}, s.reject(ctx, "return", actor, bookID, err)
	}

	if s.metrics != nil {
		s.metrics.LoansReturned.Inc()
	}
	s.logger.InfoContext(ctx, "book returned", "book_id", bookID, "user_id", actor.ID, "record_id", rec.ID)
	return rec, nil
}

// ApproveReturn lets the owner close the oldest RETURNED record of bookID.
func (s *Service) ApproveReturn(ctx context.Context, actor policy.Actor, bookID string) (Record, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return Record{}, err
	}

	var rec Record
	err = s.repo.WithinBook(ctx, bookID, func(ctx context.Context, tx Tx) error {
		pending, ok, err := tx.FindPendingReturn(ctx, bookID)
		if err != nil {
			return fmt.Errorf("find pending return: %w", err)
		}
		if err := policy.CanApproveReturn(actor, b.State(), ok); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := tx.MarkReturnApproved(ctx, pending.ID, now); err != nil {
			return err
		}
		pending.ReturnApproved = true
		pending.UpdatedAt = now
		rec = pending
		return nil
	})
	if err != nil {
		return Record{}, s.reject(ctx, "approve_return", actor, bookID, err)
	}

	if s.metrics != nil {
		s.metrics.ReturnsApproved.Inc()
	}
	s.logger.InfoContext(ctx, "return approved", "book_id", bookID, "user_id", actor.ID, "record_id", rec.ID)
	return rec, nil
}

// ListBorrowed returns every loan taken by actor, newest first.
func (s *Service) ListBorrowed(ctx context.Context, actor policy.Actor, page pagination.Request) (pagination.Page[BorrowedBook], error) {
	page = page.Normalize()
	records, total, err := s.repo.ListBorrowed(ctx, BorrowedQuery{BorrowerID: actor.ID, Page: page})
	if err != nil {
		return pagination.Page[BorrowedBook]{}, fmt.Errorf("list borrowed books: %w", err)
	}
	return s.withBooks(ctx, records, page, total)
}

// ListReturned returns the returned loans on books actor owns, newest first.
func (s *Service) ListReturned(ctx context.Context, actor policy.Actor, page pagination.Request) (pagination.Page[BorrowedBook], error) {
	page = page.Normalize()
	records, total, err := s.repo.ListReturned(ctx, ReturnedQuery{OwnerID: actor.ID, Page: page})
	if err != nil {
		return pagination.Page[BorrowedBook]{}, fmt.Errorf("list returned books: %w", err)
	}
	return s.withBooks(ctx, records, page, total)
}

func (s *Service) withBooks(ctx context.Context, records []Record, page pagination.Request, total int) (pagination.Page[BorrowedBook], error) {
	items := make([]BorrowedBook, 0, len(records))
	for _, rec := range records {
		b, err := s.books.GetByID(ctx, rec.BookID)
		if err != nil {
			return pagination.Page[BorrowedBook]{}, fmt.Errorf("resolve book %s: %w", rec.BookID, err)
		}
		items = append(items, BorrowedBook{
			RecordID:       rec.ID,
			BookID:         b.ID,
			Title:          b.Title,
			AuthorName:     b.AuthorName,
			ISBN:           b.ISBN,
			BorrowerID:     rec.BorrowerID,
			Returned:       rec.Returned,
			ReturnApproved: rec.ReturnApproved,
			BorrowedAt:     rec.CreatedAt,
		})
	}
	return pagination.New(items, page, total), nil
}

// reject logs and counts rejections. Infrastructure errors pass through
// untouched so the boundary reports them as internal failures.
func (s *Service) reject(ctx context.Context, action string, actor policy.Actor, bookID string, err error) error {
	if apperr.CodeOf(err) == 0 {
		s.logger.ErrorContext(ctx, "lending action failed", "action", action, "book_id", bookID, "user_id", actor.ID, "error", err)
		return fmt.Errorf("%s: %w", action, err)
	}
	s.metrics.ObserveRejection(action, err)
	s.logger.InfoContext(ctx, "lending action rejected", "action", action, "book_id", bookID, "user_id", actor.ID, "error", err)
	return err
}
