package loan

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"booknetwork/internal/apperr"
	"booknetwork/internal/book"
	"booknetwork/internal/pagination"
	"booknetwork/internal/platform/lock"
	"booknetwork/internal/policy"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	u1 = policy.Actor{ID: "u1"}
	u2 = policy.Actor{ID: "u2"}
	u3 = policy.Actor{ID: "u3"}
)

type fixture struct {
	books   *book.InMemoryRepo
	ledger  *InMemoryRepo
	service *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	books := book.NewInMemoryRepo()
	ledger := NewInMemoryRepo(lock.NewSharded(time.Second))
	return &fixture{books: books, ledger: ledger, service: NewService(ledger, books)}
}

func (f *fixture) addBook(t *testing.T, id, owner string, shareable, archived bool) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.books.Create(context.Background(), &book.Book{
		ID: id, OwnerID: owner, Title: "Book " + id, AuthorName: "Author", ISBN: "9780441172719",
		Shareable: shareable, Archived: archived, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestService_Borrow_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBook(t, "1", u1.ID, true, false)

	rec, err := f.service.Borrow(ctx, u2, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", rec.BookID)
	assert.Equal(t, u2.ID, rec.BorrowerID)
	assert.Equal(t, u1.ID, rec.OwnerID)
	assert.False(t, rec.Returned)
	assert.False(t, rec.ReturnApproved)
	assert.Equal(t, StatusOpen, rec.Status())

	open, err := f.service.HasOpenLoan(ctx, "1")
	require.NoError(t, err)
	assert.True(t, open)

	_, err = f.service.Borrow(ctx, u3, "1")
	assert.ErrorIs(t, err, apperr.ErrAlreadyBorrowed)

	_, err = f.service.Borrow(ctx, u1, "1")
	assert.ErrorIs(t, err, apperr.ErrSelfBorrow)

	// the check is book level, so the holder cannot borrow again either
	_, err = f.service.Borrow(ctx, u2, "1")
	assert.ErrorIs(t, err, apperr.ErrAlreadyBorrowed)
}

func TestService_Borrow_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		shareable bool
		archived  bool
		actor     policy.Actor
		wantErr   error
	}{
		{name: "archived", shareable: true, archived: true, actor: u2, wantErr: apperr.ErrBookUnavailable},
		{name: "not shareable", shareable: false, archived: false, actor: u2, wantErr: apperr.ErrBookUnavailable},
		{name: "archived own book reports unavailable", shareable: true, archived: true, actor: u1, wantErr: apperr.ErrBookUnavailable},
		{name: "own book", shareable: true, archived: false, actor: u1, wantErr: apperr.ErrSelfBorrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addBook(t, "1", u1.ID, tt.shareable, tt.archived)

			_, err := f.service.Borrow(ctx, tt.actor, "1")
			assert.ErrorIs(t, err, tt.wantErr)

			open, _ := f.service.HasOpenLoan(ctx, "1")
			assert.False(t, open, "a rejected borrow must not write a record")
		})
	}

	t.Run("unknown book", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Borrow(ctx, u2, "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Borrow_ConcurrentRequestsOpenOneLoan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBook(t, "1", u1.ID, true, false)

	const borrowers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.service.Borrow(ctx, policy.Actor{ID: fmt.Sprintf("reader-%d", i)}, "1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperr.ErrAlreadyBorrowed):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, borrowers-1, conflicts)
}

func TestService_ReturnLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBook(t, "1", u1.ID, true, false)

	borrowed, err := f.service.Borrow(ctx, u2, "1")
	require.NoError(t, err)

	_, err = f.service.ApproveReturn(ctx, u1, "1")
	assert.ErrorIs(t, err, apperr.ErrReturnNotPending, "approval cannot skip RETURNED")

	_, err = f.service.Return(ctx, u3, "1")
	assert.ErrorIs(t, err, apperr.ErrNotBorrowed)

	_, err = f.service.Return(ctx, u1, "1")
	assert.ErrorIs(t, err, apperr.ErrSelfBorrow)

	returned, err := f.service.Return(ctx, u2, "1")
	require.NoError(t, err)
	assert.Equal(t, borrowed.ID, returned.ID)
	assert.Equal(t, StatusReturned, returned.Status())

	_, err = f.service.Return(ctx, u2, "1")
	assert.ErrorIs(t, err, apperr.ErrNotBorrowed)

	open, _ := f.service.HasOpenLoan(ctx, "1")
	assert.False(t, open)

	_, err = f.service.ApproveReturn(ctx, u2, "1")
	assert.ErrorIs(t, err, apperr.ErrNotOwner)

	approved, err := f.service.ApproveReturn(ctx, u1, "1")
	require.NoError(t, err)
	assert.Equal(t, borrowed.ID, approved.ID)
	assert.Equal(t, StatusApproved, approved.Status())

	_, err = f.service.ApproveReturn(ctx, u1, "1")
	assert.ErrorIs(t, err, apperr.ErrReturnNotPending)

	_, err = f.service.Borrow(ctx, u3, "1")
	assert.NoError(t, err, "a returned book can be borrowed again")
}

func TestService_Return_UnavailableBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addBook(t, "1", u1.ID, true, false)

	_, err := f.service.Borrow(ctx, u2, "1")
	require.NoError(t, err)
	_, err = f.books.ToggleArchived(ctx, "1")
	require.NoError(t, err)

	_, err = f.service.Return(ctx, u2, "1")
	assert.ErrorIs(t, err, apperr.ErrBookUnavailable)
}

func TestService_Listings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	f.service.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	f.addBook(t, "1", u1.ID, true, false)
	f.addBook(t, "2", u1.ID, true, false)
	f.addBook(t, "3", u3.ID, true, false)

	_, err := f.service.Borrow(ctx, u2, "1")
	require.NoError(t, err)
	_, err = f.service.Borrow(ctx, u2, "2")
	require.NoError(t, err)
	_, err = f.service.Borrow(ctx, u2, "3")
	require.NoError(t, err)
	_, err = f.service.Return(ctx, u2, "1")
	require.NoError(t, err)
	_, err = f.service.Return(ctx, u2, "3")
	require.NoError(t, err)

	borrowed, err := f.service.ListBorrowed(ctx, u2, pagination.Request{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, borrowed.TotalElements)
	require.Len(t, borrowed.Content, 3)
	assert.Equal(t, "3", borrowed.Content[0].BookID)
	assert.Equal(t, "Book 3", borrowed.Content[0].Title)
	assert.Equal(t, "1", borrowed.Content[2].BookID)

	returned, err := f.service.ListReturned(ctx, u1, pagination.Request{Size: 10})
	require.NoError(t, err)
	require.Len(t, returned.Content, 1)
	assert.Equal(t, "1", returned.Content[0].BookID)
	assert.True(t, returned.Content[0].Returned)
	assert.False(t, returned.Content[0].ReturnApproved)

	empty, err := f.service.ListBorrowed(ctx, u1, pagination.Request{})
	require.NoError(t, err)
	assert.Empty(t, empty.Content)
	assert.NotNil(t, empty.Content)
}

func TestService_Borrow_RejectionWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	tx := NewMockTx(ctrl)
	books := NewMockBookReader(ctrl)
	service := NewService(repo, books)

	books.EXPECT().GetByID(gomock.Any(), "1").Return(book.Book{ID: "1", OwnerID: "u1", Shareable: true}, nil)
	repo.EXPECT().WithinBook(gomock.Any(), "1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context, Tx) error) error {
			return fn(ctx, tx)
		})
	tx.EXPECT().HasOpenLoan(gomock.Any(), "1").Return(true, nil)
	tx.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Borrow(context.Background(), u2, "1")

	assert.ErrorIs(t, err, apperr.ErrAlreadyBorrowed)
}

func TestService_Borrow_StoreFailureIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	books := NewMockBookReader(ctrl)
	service := NewService(repo, books)
	boom := errors.New("connection reset")

	books.EXPECT().GetByID(gomock.Any(), "1").Return(book.Book{ID: "1", OwnerID: "u1", Shareable: true}, nil)
	repo.EXPECT().WithinBook(gomock.Any(), "1", gomock.Any()).Return(boom)

	_, err := service.Borrow(context.Background(), u2, "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, apperr.Code(0), apperr.CodeOf(err))
}
