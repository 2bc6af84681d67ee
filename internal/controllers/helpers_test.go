package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanqui-art/inmo-app-sub002/internal/utils"
)

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{utils.ErrNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{utils.ErrOwnershipMismatch, http.StatusForbidden, utils.ErrCodeForbidden},
		{utils.ErrRateLimitExceeded, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded},
		{utils.ErrEmailExists, http.StatusConflict, utils.ErrCodeConflict},
		{utils.ErrAccountBanned, http.StatusForbidden, utils.ErrCodeForbidden},
		{utils.ErrSlotTaken, http.StatusConflict, utils.ErrCodeSlotTaken},
		{utils.ErrSlotUnavailable, http.StatusUnprocessableEntity, utils.ErrCodeSlotUnavailable},
		{utils.ErrPropertyNotLive, http.StatusUnprocessableEntity, utils.ErrCodeSlotUnavailable},
		{utils.ErrOwnProperty, http.StatusUnprocessableEntity, utils.ErrCodeValidation},
		{utils.ErrCancelTooLate, http.StatusUnprocessableEntity, utils.ErrCodeCancelTooLate},
		{utils.ErrBadStatusChange, http.StatusUnprocessableEntity, utils.ErrCodeInvalidStatusChange},
		{errors.New("boom"), http.StatusInternalServerError, utils.ErrCodeInternal},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		handleServiceError(w, c.err)

		assert.Equalf(t, c.wantStatus, w.Code, "status for %v", c.err)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equalf(t, c.wantCode, body.Code, "code for %v", c.err)
	}
}

func TestHandleServiceErrorUnwrapsWrappedSentinels(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, fmt.Errorf("during booking: %w", utils.ErrSlotTaken))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleServiceErrorPassesThroughAppErrors(t *testing.T) {
	w := httptest.NewRecorder()
	handleServiceError(w, &utils.AppError{
		StatusCode: http.StatusBadGateway,
		Code:       utils.ErrCodeInternal,
		Message:    "Upstream geocoder failed",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Upstream geocoder failed", body.Message)
}
