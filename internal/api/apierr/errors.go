package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidScoreInput   = "INVALID_SCORE_INPUT"
	CodeEmptyIdentity       = "EMPTY_IDENTITY"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotModerator        = "NOT_MODERATOR"
	CodeModeratorCannotJoin = "MODERATOR_CANNOT_JOIN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status code err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// Describe returns the code and message err maps to, for transports that
// cannot carry an HTTP status
func Describe(err error) APIError {
	return toHTTPError(err).apiError
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidScoreInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScoreInput, "Score must be a number"}}
	case errors.Is(err, model.ErrEmptyIdentity):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyIdentity, "Username is required"}}
	case errors.Is(err, model.ErrNotModerator):
		return &httpError{http.StatusForbidden, APIError{CodeNotModerator, "Only the moderator can perform this action"}}
	case errors.Is(err, model.ErrModeratorCannotJoin):
		return &httpError{http.StatusConflict, APIError{CodeModeratorCannotJoin, "Moderators cannot join as contestants"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Username and secret are required"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewRateLimitedError creates a too-many-requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests, slow down"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
