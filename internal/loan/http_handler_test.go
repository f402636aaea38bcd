package loan

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"booknetwork/internal/httpx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withActor(r *http.Request, id string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), id))
}

func newRequest(method, target, bookID, actorID string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	if bookID != "" {
		r.SetPathValue("id", bookID)
	}
	if actorID != "" {
		r = withActor(r, actorID)
	}
	return r
}

func TestHTTPHandler_BorrowFlow(t *testing.T) {
	f := newFixture(t)
	f.addBook(t, "1", "u1", true, false)
	handler := NewHTTPHandler(f.service)

	t.Run("borrow", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Borrow(w, newRequest(http.MethodPost, "/api/v1/books/borrow/1", "1", "u2"))

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data Record `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "u2", resp.Data.BorrowerID)
		assert.False(t, resp.Data.Returned)
	})

	t.Run("already borrowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Borrow(w, newRequest(http.MethodPost, "/api/v1/books/borrow/1", "1", "u3"))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"business_code":303`)
	})

	t.Run("owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Borrow(w, newRequest(http.MethodPost, "/api/v1/books/borrow/1", "1", "u1"))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"business_code":302`)
	})

	t.Run("return", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Return(w, newRequest(http.MethodPatch, "/api/v1/books/borrow/return/1", "1", "u2"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"returned":true`)
	})

	t.Run("approve by non owner", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ApproveReturn(w, newRequest(http.MethodPatch, "/api/v1/books/borrow/return/approve/1", "1", "u2"))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("approve", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ApproveReturn(w, newRequest(http.MethodPatch, "/api/v1/books/borrow/return/approve/1", "1", "u1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"return_approved":true`)
	})

	t.Run("listings", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListBorrowed(w, newRequest(http.MethodGet, "/api/v1/books/borrowed?page=0&size=5", "", "u2"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_elements":1`)

		w = httptest.NewRecorder()
		handler.ListReturned(w, newRequest(http.MethodGet, "/api/v1/books/returned", "", "u1"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"title":"Book 1"`)
	})
}

func TestHTTPHandler_Errors(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.service)

	t.Run("unknown book", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Borrow(w, newRequest(http.MethodPost, "/api/v1/books/borrow/nope", "nope", "u2"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Borrow(w, newRequest(http.MethodPost, "/api/v1/books/borrow/1", "1", ""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHTTPHandler_Register(t *testing.T) {
	f := newFixture(t)
	f.addBook(t, "1", "u1", true, false)
	mux := http.NewServeMux()
	NewHTTPHandler(f.service).Register(httpx.NewRouter(mux, "/api/v1"))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, withActor(httptest.NewRequest(http.MethodPost, "/api/v1/books/borrow/1", nil), "u2"))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/books/borrow/1", nil), "u2"))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
