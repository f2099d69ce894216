package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string, cause error) {
	body := errorBody{Message: msg}
	if cause != nil {
		body.Error = cause.Error()
	}
	writeJSON(w, status, body)
}

// respondStoreError maps a store failure onto the envelope. Not-found and
// validation outcomes keep their status; anything else is a store fault
// reported with storeStatus (500 for reads, 400 on the create/update paths
// where store schema failures fold into client errors).
func respondStoreError(w http.ResponseWriter, err error, storeStatus int) {
	switch {
	case errors.Is(err, exam.ErrNotFound):
		respondError(w, http.StatusNotFound, "Exam not found", nil)
	case exam.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		logrus.WithError(err).Error("store operation failed")
		respondError(w, storeStatus, "Database error", err)
	}
}
