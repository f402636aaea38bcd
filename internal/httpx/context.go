package httpx

import (
	"context"
	"net/http"

	"booknetwork/internal/policy"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"
	accessKey    contextKey = "access"
)

// accessInfo lets handlers deeper in the chain report back to the access
// log, which only sees the request it forwarded.
type accessInfo struct {
	userID string
}

// UserIDFrom retrieves the user ID from the request context.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// ActorFrom returns the authenticated actor, if any.
func ActorFrom(r *http.Request) (policy.Actor, bool) {
	id := UserIDFrom(r)
	return policy.Actor{ID: id}, id != ""
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser returns a new context carrying the user ID.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	if info, ok := ctx.Value(accessKey).(*accessInfo); ok {
		info.userID = userID
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
