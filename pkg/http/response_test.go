package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hotelbook/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "not found", err: apperrors.NotFound("Room"), wantStatus: http.StatusNotFound, wantBody: "Room not found"},
		{name: "invalid input", err: apperrors.InvalidInput("bad id"), wantStatus: http.StatusBadRequest, wantBody: "bad id"},
		{name: "timeout", err: apperrors.Timeout("busy"), wantStatus: http.StatusConflict, wantBody: "busy"},
		{name: "plain error", err: errors.New("secret detail"), wantStatus: http.StatusInternalServerError, wantBody: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			assert.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "secret detail")
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.NoError(t, WriteSuccess(rec, map[string]int{"rooms": 20}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"rooms":20}}`, rec.Body.String())
}
