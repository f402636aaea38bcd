package loan

import (
	"context"
	"sort"
	"sync"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/pagination"
	"booknetwork/internal/platform/lock"
)

// InMemoryRepo keeps records in process. WithinBook serializes callers per
// book with a sharded lock; the record slice has its own mutex.
type InMemoryRepo struct {
	locks *lock.Sharded

	mu      sync.RWMutex
	records []Record
}

func NewInMemoryRepo(locks *lock.Sharded) *InMemoryRepo {
	if locks == nil {
		locks = lock.NewSharded(0)
	}
	return &InMemoryRepo{locks: locks}
}

func (r *InMemoryRepo) WithinBook(ctx context.Context, bookID string, fn func(ctx context.Context, tx Tx) error) error {
	return r.locks.Run(ctx, bookID, func(ctx context.Context) error {
		return fn(ctx, memTx{repo: r})
	})
}

func (r *InMemoryRepo) HasOpenLoan(_ context.Context, bookID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasOpenLocked(bookID), nil
}

func (r *InMemoryRepo) hasOpenLocked(bookID string) bool {
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.Open() {
			return true
		}
	}
	return false
}

func (r *InMemoryRepo) ListBorrowed(_ context.Context, q BorrowedQuery) ([]Record, int, error) {
	return r.list(q.Page, func(rec Record) bool { return rec.BorrowerID == q.BorrowerID })
}

func (r *InMemoryRepo) ListReturned(_ context.Context, q ReturnedQuery) ([]Record, int, error) {
	return r.list(q.Page, func(rec Record) bool { return rec.OwnerID == q.OwnerID && rec.Returned })
}

// list orders newest first; later inserts win timestamp ties.
func (r *InMemoryRepo) list(page pagination.Request, keep func(Record) bool) ([]Record, int, error) {
	r.mu.RLock()
	matched := make([]Record, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if keep(r.records[i]) {
			matched = append(matched, r.records[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	window := pagination.Window(matched, page)
	return append([]Record(nil), window...), len(matched), nil
}

type memTx struct {
	repo *InMemoryRepo
}

func (t memTx) HasOpenLoan(ctx context.Context, bookID string) (bool, error) {
	return t.repo.HasOpenLoan(ctx, bookID)
}

func (t memTx) FindOpen(_ context.Context, bookID, borrowerID string) (Record, bool, error) {
	t.repo.mu.RLock()
	defer t.repo.mu.RUnlock()
	for _, rec := range t.repo.records {
		if rec.BookID == bookID && rec.BorrowerID == borrowerID && rec.Open() {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

func (t memTx) FindPendingReturn(_ context.Context, bookID string) (Record, bool, error) {
	t.repo.mu.RLock()
	defer t.repo.mu.RUnlock()
	for _, rec := range t.repo.records {
		if rec.BookID == bookID && rec.Status() == StatusReturned {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

func (t memTx) Insert(_ context.Context, rec *Record) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	if t.repo.hasOpenLocked(rec.BookID) {
		return apperr.ErrAlreadyBorrowed
	}
	t.repo.records = append(t.repo.records, *rec)
	return nil
}

func (t memTx) MarkReturned(_ context.Context, id string, at time.Time) error {
	return t.update(id, apperr.ErrNotBorrowed, func(rec *Record) bool {
		if rec.Returned {
			return false
		}
		rec.Returned = true
		rec.UpdatedAt = at
		return true
	})
}

func (t memTx) MarkReturnApproved(_ context.Context, id string, at time.Time) error {
	return t.update(id, apperr.ErrReturnNotPending, func(rec *Record) bool {
		if rec.Status() != StatusReturned {
			return false
		}
		rec.ReturnApproved = true
		rec.UpdatedAt = at
		return true
	})
}

// update applies a one way transition; fn reports false when the record is
// not in the state the transition starts from.
func (t memTx) update(id string, rejection *apperr.ConflictError, fn func(rec *Record) bool) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for i := range t.repo.records {
		if t.repo.records[i].ID != id {
			continue
		}
		if !fn(&t.repo.records[i]) {
			return rejection
		}
		return nil
	}
	return apperr.NotFound("borrow record", id)
}
