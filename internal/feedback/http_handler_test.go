package feedback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booknetwork/internal/book"
	"booknetwork/internal/httpx"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	books := NewMockBookReader(ctrl)
	handler := NewHTTPHandler(NewService(repo, books))

	post := func(body, actorID string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/feedbacks", strings.NewReader(body))
		if actorID != "" {
			r = r.WithContext(httpx.ContextWithUser(r.Context(), actorID))
		}
		w := httptest.NewRecorder()
		handler.Create(w, r)
		return w
	}

	t.Run("success", func(t *testing.T) {
		books.EXPECT().GetByID(gomock.Any(), "1").Return(book.Book{ID: "1", OwnerID: "u1", Shareable: true}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		w := post(`{"book_id":"1","rating":4,"comment":"great"}`, "u2")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"author_id":"u2"`)
	})

	t.Run("self feedback", func(t *testing.T) {
		books.EXPECT().GetByID(gomock.Any(), "1").Return(book.Book{ID: "1", OwnerID: "u1", Shareable: true}, nil)

		w := post(`{"book_id":"1","rating":4,"comment":"great"}`, "u1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"business_code":304`)
	})

	t.Run("validation", func(t *testing.T) {
		w := post(`{"book_id":"1","rating":7,"comment":""}`, "u2")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "rating is out of range")
		assert.Contains(t, w.Body.String(), "comment is required")
	})

	t.Run("unauthorized", func(t *testing.T) {
		w := post(`{}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHTTPHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	books := NewMockBookReader(ctrl)
	handler := NewHTTPHandler(NewService(repo, books))

	books.EXPECT().GetByID(gomock.Any(), "1").Return(book.Book{ID: "1"}, nil)
	repo.EXPECT().Summary(gomock.Any(), "1").DoAndReturn(func(_ context.Context, id string) (Summary, error) {
		return Summary{BookID: id, Average: 4.25, Count: 4}, nil
	})

	r := httptest.NewRequest(http.MethodGet, "/api/v1/feedbacks/book/1/summary", nil)
	r.SetPathValue("id", "1")
	w := httptest.NewRecorder()
	handler.Summary(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"average":4.3`)
	assert.Contains(t, w.Body.String(), `"count":4`)
}
