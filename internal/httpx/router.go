package httpx

import (
	"net/http"
	"strings"
)

// Router registers "METHOD /path" patterns under a prefix, wrapping every
// handler with the same middleware.
type Router struct {
	mux         *http.ServeMux
	prefix      string
	middlewares []func(http.Handler) http.Handler
}

func NewRouter(mux *http.ServeMux, prefix string, middlewares ...func(http.Handler) http.Handler) *Router {
	return &Router{mux: mux, prefix: strings.TrimSuffix(prefix, "/"), middlewares: middlewares}
}

// HandleFunc mounts h on pattern, e.g. "GET /books/{id}".
func (rt *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	if !ok {
		method, path = "", pattern
	}
	full := rt.prefix + path
	if method != "" {
		full = method + " " + full
	}
	rt.mux.Handle(full, Chain(h, rt.middlewares...))
}
