// FILE: internal/pkg/apperror/apperror.go
package apperror

import "net/http"

// Kind classifies a domain failure. The HTTP layer maps kinds to status
// codes, the services never touch status codes directly.
type Kind string

const (
	KindValidation           Kind = "VALIDATION_ERROR"
	KindInvalidHierarchy     Kind = "INVALID_HIERARCHY"
	KindConflict             Kind = "CONFLICT"
	KindNotFound             Kind = "NOT_FOUND"
	KindReferentialIntegrity Kind = "REFERENTIAL_INTEGRITY"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	// Retry marks the optimistic-concurrency conflict, the one failure the
	// caller should retry. Uniqueness conflicts are deterministic and stay 400.
	Retry bool `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch {
	case e.Kind == KindNotFound:
		return http.StatusNotFound
	case e.Kind == KindConflict && e.Retry:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewInvalidHierarchy(message string) *AppError {
	return &AppError{Kind: KindInvalidHierarchy, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewRetryConflict builds the version-check conflict: same kind, but surfaced
// as 409 so clients know to re-read and retry.
func NewRetryConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Retry: true}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewReferentialIntegrity(message string) *AppError {
	return &AppError{Kind: KindReferentialIntegrity, Message: message}
}
