package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultSize = 10
	MaxSize     = 100
	// MaxPage keeps Offset and Offset+Limit inside int.
	MaxPage = math.MaxInt/MaxSize - 1
)

// Request is a zero based page request.
type Request struct {
	Page int
	Size int
}

// Normalize clamps the request into a usable range.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size <= 0 || r.Size > MaxSize {
		r.Size = DefaultSize
	}
	return r
}

// Limit and Offset translate the request for SQL.
func (r Request) Limit() int  { return r.Normalize().Size }
func (r Request) Offset() int { n := r.Normalize(); return n.Page * n.Size }

// FromQuery reads page and size query parameters.
func FromQuery(r *http.Request) Request {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("size"))
	return Request{Page: page, Size: size}.Normalize()
}

// Page is the envelope every listing returns.
type Page[T any] struct {
	Content       []T  `json:"content"`
	Number        int  `json:"number"`
	Size          int  `json:"size"`
	TotalElements int  `json:"total_elements"`
	TotalPages    int  `json:"total_pages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// New builds a page from one slice of items and the total element count.
func New[T any](items []T, req Request, total int) Page[T] {
	req = req.Normalize()
	if items == nil {
		items = []T{}
	}
	totalPages := (total + req.Size - 1) / req.Size
	return Page[T]{
		Content:       items,
		Number:        req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
	}
}

// Map converts the items of a page, keeping the envelope.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}

// Window returns the slice of items covered by req, for in-memory stores.
func Window[T any](items []T, req Request) []T {
	offset, limit := req.Offset(), req.Limit()
	if offset < 0 || offset >= len(items) {
		return nil
	}
	if limit > len(items)-offset {
		limit = len(items) - offset
	}
	return items[offset : offset+limit]
}
