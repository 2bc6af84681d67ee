package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/juanqui-art/inmo-app-sub002/internal/middleware"
	"github.com/juanqui-art/inmo-app-sub002/internal/models"
	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

// getUserIDFromContext parses the authenticated subject set by the auth
// middleware. Returns uuid.Nil when the request is unauthenticated.
func getUserIDFromContext(r *http.Request) uuid.UUID {
	sub, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// middlewareRole returns the role claim of the authenticated caller.
func middlewareRole(r *http.Request) (models.UserRoleType, bool) {
	raw, ok := middleware.UserRoleFromContext(r.Context())
	if !ok {
		return "", false
	}
	return models.UserRoleType(raw), true
}

// pathUUID extracts and parses a UUID path variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, errors.New("missing path variable " + name)
	}
	return uuid.Parse(raw)
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryFloat reads a float query parameter. The second return reports
// whether the parameter was present and valid.
func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func respondNotFound(w http.ResponseWriter) {
	utils.RespondErrorWithCode(
		w, http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", nil,
	)
}

// handleServiceError maps the service sentinels onto HTTP responses.
// Services that already built a full AppError pass through untouched.
func handleServiceError(w http.ResponseWriter, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.HandleAppError(w, err)
		return
	}

	switch {
	case errors.Is(err, utils.ErrNotFound):
		respondNotFound(w)
	case errors.Is(err, utils.ErrOwnershipMismatch):
		utils.RespondErrorWithCode(
			w, http.StatusForbidden, utils.ErrCodeForbidden, "You do not own this resource", nil,
		)
	case errors.Is(err, utils.ErrRateLimitExceeded):
		utils.RespondErrorWithCode(
			w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded, "Too many requests. Please try again later.", nil,
		)
	case errors.Is(err, utils.ErrEmailExists):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeConflict, "An account with this email already exists", nil,
		)
	case errors.Is(err, utils.ErrAccountBanned):
		utils.RespondErrorWithCode(
			w, http.StatusForbidden, utils.ErrCodeForbidden, "This account is banned", nil,
		)
	case errors.Is(err, utils.ErrSlotTaken):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeSlotTaken, "This slot was just taken", nil,
		)
	case errors.Is(err, utils.ErrSlotUnavailable):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeSlotUnavailable, "The requested slot is not bookable", nil,
		)
	case errors.Is(err, utils.ErrPropertyNotLive):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeSlotUnavailable, "This listing is not open for visits", nil,
		)
	case errors.Is(err, utils.ErrOwnProperty):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeValidation, "Agents cannot book visits to their own listings", nil,
		)
	case errors.Is(err, utils.ErrCancelTooLate):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeCancelTooLate, "Too close to the visit to cancel", nil,
		)
	case errors.Is(err, utils.ErrBadStatusChange):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeInvalidStatusChange, "This status change is not allowed", nil,
		)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "The resource was modified concurrently. Please retry.", nil,
		)
	case errors.Is(err, utils.ErrInvalidRole):
		utils.RespondErrorWithCode(
			w, http.StatusUnprocessableEntity, utils.ErrCodeValidation, "Invalid role for this operation", nil,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "An unexpected error occurred", nil, err,
		)
	}
}
