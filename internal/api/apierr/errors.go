package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/services/auth"
)

// Error codes returned in API error responses
const (
	CodeInvalidRequest = "invalid_request"
	CodePartyNotFound  = "party_not_found"
	CodePartyClosed    = "party_closed"
	CodePartyFull      = "party_full"
	CodeRoleFull       = "role_full"
	CodeUnknownRole    = "unknown_role"
	CodeUnauthorized   = "unauthorized"
	CodeInternalError  = "internal_error"
)

// APIError is the error payload returned to clients
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	status  int
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with an explicit HTTP status
func New(status int, code, message string) *APIError {
	return &APIError{Code: code, Message: message, status: status}
}

// NewInvalidRequest creates a 400 error
func NewInvalidRequest(message string) *APIError {
	return New(http.StatusBadRequest, CodeInvalidRequest, message)
}

// NewUnauthorized creates a 403 error
func NewUnauthorized() *APIError {
	return New(http.StatusForbidden, CodeUnauthorized, "operator token required")
}

// NewInternal creates a 500 error
func NewInternal() *APIError {
	return New(http.StatusInternalServerError, CodeInternalError, "internal server error")
}

// WriteError maps an error to an HTTP error response
func WriteError(w http.ResponseWriter, err error) {
	apiErr := fromError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: *apiErr})
}

func fromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, model.ErrPartyNotFound):
		return New(http.StatusNotFound, CodePartyNotFound, "party not found")
	case errors.Is(err, model.ErrPartyClosed):
		return New(http.StatusConflict, CodePartyClosed, "party is closed")
	case errors.Is(err, model.ErrPartyFull):
		return New(http.StatusConflict, CodePartyFull, "party is full")
	case errors.Is(err, model.ErrRoleFull):
		return New(http.StatusConflict, CodeRoleFull, "role is full")
	case errors.Is(err, model.ErrUnknownRole):
		return New(http.StatusBadRequest, CodeUnknownRole, "unknown role")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrNotEnabled):
		return NewUnauthorized()
	default:
		return NewInternal()
	}
}
