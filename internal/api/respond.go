package api

import (
	"encoding/json"
	"net/http"

	"github.com/deciviz/deciviz/pkg/errors"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeGraphNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidKind,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPreset, errors.ErrCodeInvalidDirection,
		errors.ErrCodeInvalidPath, errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// badRequest replies 400 with an INVALID_INPUT body.
func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeError(w, errors.New(errors.ErrCodeInvalidInput, format, args...))
}
