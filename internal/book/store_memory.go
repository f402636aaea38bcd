package book

import (
	"context"
	"sort"
	"sync"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/pagination"
)

// InMemoryRepo is a Repository for tests and STORAGE=memory.
type InMemoryRepo struct {
	mu    sync.RWMutex
	books map[string]*entry
	seq   int64
}

type entry struct {
	book Book
	seq  int64
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{books: make(map[string]*entry)}
}

func (r *InMemoryRepo) Create(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.books[b.ID] = &entry{book: *b, seq: r.seq}
	return nil
}

func (r *InMemoryRepo) GetByID(_ context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.books[id]
	if !ok {
		return Book{}, apperr.NotFound("book", id)
	}
	return e.book, nil
}

func (r *InMemoryRepo) ListDisplayable(_ context.Context, q DisplayableQuery) ([]Book, int, error) {
	return r.list(q.Page, func(b Book) bool {
		return b.Shareable && !b.Archived && b.OwnerID != q.ViewerID
	})
}

func (r *InMemoryRepo) ListByOwner(_ context.Context, q OwnerQuery) ([]Book, int, error) {
	return r.list(q.Page, func(b Book) bool { return b.OwnerID == q.OwnerID })
}

func (r *InMemoryRepo) ToggleShareable(_ context.Context, id string) (bool, error) {
	return r.flip(id, func(b *Book) bool {
		b.Shareable = !b.Shareable
		return b.Shareable
	})
}

func (r *InMemoryRepo) ToggleArchived(_ context.Context, id string) (bool, error) {
	return r.flip(id, func(b *Book) bool {
		b.Archived = !b.Archived
		return b.Archived
	})
}

func (r *InMemoryRepo) flip(id string, fn func(b *Book) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.books[id]
	if !ok {
		return false, apperr.NotFound("book", id)
	}
	value := fn(&e.book)
	e.book.UpdatedAt = time.Now().UTC()
	return value, nil
}

// list filters and orders newest first; insertion order breaks timestamp ties.
func (r *InMemoryRepo) list(page pagination.Request, keep func(Book) bool) ([]Book, int, error) {
	r.mu.RLock()
	matched := make([]entry, 0, len(r.books))
	for _, e := range r.books {
		if keep(e.book) {
			matched = append(matched, *e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].book.CreatedAt.Equal(matched[j].book.CreatedAt) {
			return matched[i].book.CreatedAt.After(matched[j].book.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]Book, 0, len(matched))
	for _, e := range pagination.Window(matched, page) {
		out = append(out, e.book)
	}
	return out, len(matched), nil
}
