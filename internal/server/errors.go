package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emrgen/doctrack/internal/repository"
	"github.com/sirupsen/logrus"
)

var errNotFound = errors.New("document not found")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: err.Error()})
}

// writeRepositoryError maps repository errors onto HTTP statuses
func writeRepositoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMissingField):
		writeError(w, http.StatusBadRequest, "MISSING_FIELD", err)
	case errors.Is(err, repository.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "INVALID_STATUS", err)
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err)
	default:
		writeError(w, http.StatusInternalServerError, "BACKEND", err)
	}
}
