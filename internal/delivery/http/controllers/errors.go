package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// writeServiceError is the single boundary translating domain sentinel
// errors to HTTP status codes. Anything outside the closed set is logged
// with full context and surfaced as a generic internal error.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrUserNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrAlreadyMember):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "email already registered")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
	}
}
