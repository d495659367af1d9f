package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "hotelbook/pkg/errors"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	var statusCode int
	switch appErr.Code {
	case apperrors.CodeInvalidInput, apperrors.CodeValidation, apperrors.CodeBadRequest:
		statusCode = http.StatusBadRequest
	case apperrors.CodeNotFound:
		statusCode = http.StatusNotFound
	case apperrors.CodeConflict, apperrors.CodeTimeout:
		statusCode = http.StatusConflict
	default:
		statusCode = http.StatusInternalServerError
	}

	return WriteJSON(w, statusCode, ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}
