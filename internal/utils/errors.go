package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrEmailExists       = errors.New("email_exists")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrAccountBanned     = errors.New("account_banned")
	ErrSlotTaken         = errors.New("slot_taken")
	ErrSlotUnavailable   = errors.New("slot_unavailable")
	ErrPropertyNotLive   = errors.New("property_not_published")
	ErrOwnProperty       = errors.New("own_property")
	ErrCancelTooLate     = errors.New("cancel_too_late")
	ErrBadStatusChange   = errors.New("invalid_status_transition")
	ErrNotFound          = errors.New("not_found")
	ErrOwnershipMismatch = errors.New("ownership_mismatch")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For rate limiting
	ErrRateLimitExceeded = errors.New("rate_limit_exceeded")
)

// AppError carries structured failures from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
