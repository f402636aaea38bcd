package feedback

import (
	"net/http"

	"booknetwork/internal/httpx"
	"booknetwork/internal/pagination"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

func (h *HTTPHandler) Register(rt *httpx.Router) {
	rt.HandleFunc("POST /feedbacks", h.Create)
	rt.HandleFunc("GET /feedbacks/book/{id}", h.ListByBook)
	rt.HandleFunc("GET /feedbacks/book/{id}/summary", h.Summary)
}

// Create handles POST /feedbacks
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

	f, err := h.service.Create(r.Context(), actor, cmd)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, f)
}

// ListByBook handles GET /feedbacks/book/{id}
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	actor, ok := httpx.ActorFrom(r)
	if !ok {
		httpx.RequireActor(w, r)
		return
	}

	page, err := h.service.ListByBook(r.Context(), actor, r.PathValue("id"), pagination.FromQuery(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page, nil)
}

// Summary handles GET /feedbacks/book/{id}/summary
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.service.Summary(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, sum, nil)
}
