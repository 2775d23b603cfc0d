package json

import (
	"errors"
	"net/http"
)

// ErrorResponse is the error envelope on every failing route: a single
// human-readable error string.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	Write(w, status, ErrorResponse{Error: msg})
}

func WriteValidationError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, err)
}

func WriteUnauthorizedError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusUnauthorized, err)
}

func WriteInternalError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err)
}

func WriteBadRequestError(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, errors.New(msg))
}
