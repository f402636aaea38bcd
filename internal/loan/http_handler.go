package loan

import (
	"context"
	"net/http"

	"booknetwork/internal/httpx"
	"booknetwork/internal/pagination"
	"booknetwork/internal/policy"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the ledger routes.
func (h *HTTPHandler) Register(rt *httpx.Router) {
	rt.HandleFunc("POST /books/borrow/{id}", h.Borrow)
	rt.HandleFunc("PATCH /books/borrow/return/{id}", h.Return)
	rt.HandleFunc("PATCH /books/borrow/return/approve/{id}", h.ApproveReturn)
	rt.HandleFunc("GET /books/borrowed", h.ListBorrowed)
	rt.HandleFunc("GET /books/returned", h.ListReturned)
}

// Borrow handles POST /books/borrow/{id}
func (h *HTTPHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	rec, err := h.service.Borrow(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, rec)
}

// Return handles PATCH /books/borrow/return/{id}
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Return)
}

// ApproveReturn handles PATCH /books/borrow/return/approve/{id}
func (h *HTTPHandler) ApproveReturn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ApproveReturn)
}

func (h *HTTPHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, actor policy.Actor, bookID string) (Record, error),
) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	rec, err := fn(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, rec, nil)
}

// ListBorrowed handles GET /books/borrowed
func (h *HTTPHandler) ListBorrowed(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	page, err := h.service.ListBorrowed(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page, nil)
}

// ListReturned handles GET /books/returned
func (h *HTTPHandler) ListReturned(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	page, err := h.service.ListReturned(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page, nil)
}
