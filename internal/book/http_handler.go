package book

import (
	"context"
	"net/http"

	"booknetwork/internal/httpx"
	"booknetwork/internal/pagination"
	"booknetwork/internal/policy"
)

type toggleFunc func(ctx context.Context, actor policy.Actor, id string) (string, error)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the catalog routes. Every route expects the auth
// middleware to have resolved an actor.
func (h *HTTPHandler) Register(rt *httpx.Router) {
	rt.HandleFunc("POST /books", h.Create)
	rt.HandleFunc("GET /books", h.ListDisplayable)
	rt.HandleFunc("GET /books/owner", h.ListByOwner)
	rt.HandleFunc("GET /books/{id}", h.GetByID)
	rt.HandleFunc("PATCH /books/shareable/{id}", h.ToggleShareable)
	rt.HandleFunc("PATCH /books/archived/{id}", h.ToggleArchived)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	var cmd CreateCommand
	if !httpx.DecodeAndValidate(w, r, &cmd) {
		return
	}

	b, err := h.service.Create(r.Context(), actor, cmd)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// GetByID handles GET /books/{id}
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// ListDisplayable handles GET /books
func (h *HTTPHandler) ListDisplayable(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	page, err := h.service.ListDisplayable(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page, nil)
}

// ListByOwner handles GET /books/owner
func (h *HTTPHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	page, err := h.service.ListByOwner(r.Context(), actor, pagination.FromQuery(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page, nil)
}

// ToggleShareable handles PATCH /books/shareable/{id}
func (h *HTTPHandler) ToggleShareable(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleShareable)
}

// ToggleArchived handles PATCH /books/archived/{id}
func (h *HTTPHandler) ToggleArchived(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleArchived)
}

func (h *HTTPHandler) toggle(w http.ResponseWriter, r *http.Request, fn toggleFunc) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	id, err := fn(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]string{"id": id}, nil)
}
