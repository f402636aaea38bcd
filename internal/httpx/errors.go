package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"booknetwork/internal/apperr"
)

// WriteError maps a domain error to its HTTP status and stable code. Unknown
// errors are logged and reported as a 500 without leaking details.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *apperr.NotFoundError
		permission *apperr.PermissionError
		conflict   *apperr.ConflictError
		validation *apperr.ValidationError
	)

	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	message := "Internal server error"
	var details []ErrorDetail

	switch {
	case errors.As(err, &notFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", notFound.Error()
	case errors.As(err, &permission):
		status, code, message = http.StatusForbidden, "OPERATION_NOT_PERMITTED", permission.Error()
	case errors.As(err, &conflict):
		status, code, message = http.StatusConflict, "OPERATION_NOT_PERMITTED", conflict.Error()
	case errors.As(err, &validation):
		status, code, message = http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input"
		details = []ErrorDetail{{Field: validation.Field, Message: validation.Reason}}
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", RequestIDFrom(r),
			"path", r.URL.Path,
			"error", err,
		)
	}

	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:       code,
			BusinessID: int(apperr.CodeOf(err)),
			Message:    message,
			Details:    details,
		},
		Meta: buildMeta(r, nil),
	})
}
