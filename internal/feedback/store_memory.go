package feedback

import (
	"context"
	"sort"
	"sync"

	"booknetwork/internal/pagination"
)

type InMemoryRepo struct {
	mu        sync.RWMutex
	feedbacks []Feedback
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Create(_ context.Context, f *Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbacks = append(r.feedbacks, *f)
	return nil
}

func (r *InMemoryRepo) ListByBook(_ context.Context, q BookQuery) ([]Feedback, int, error) {
	r.mu.RLock()
	matched := make([]Feedback, 0)
	for i := len(r.feedbacks) - 1; i >= 0; i-- {
		if r.feedbacks[i].BookID == q.BookID {
			matched = append(matched, r.feedbacks[i])
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return append([]Feedback(nil), pagination.Window(matched, q.Page)...), len(matched), nil
}

func (r *InMemoryRepo) Summary(_ context.Context, bookID string) (Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum Summary
	var total float64
	for _, f := range r.feedbacks {
		if f.BookID == bookID {
			total += f.Rating
			sum.Count++
		}
	}
	if sum.Count > 0 {
		sum.Average = total / float64(sum.Count)
	}
	return sum, nil
}
