package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/storage"

	"github.com/go-chi/chi/v5"
)

func ListExamsHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := store.ListExams(r.Context())
		if err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, exams)
	}
}

func GetExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		e, err := store.GetExam(r.Context(), id)
		if err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

// CreateExamHandler accepts either a JSON body or a multipart form with
// image files (see upload.go).
func CreateExamHandler(store exam.Store, blobs storage.BlobStore, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			createExamMultipart(store, blobs, maxUpload, w, r)
			return
		}

		var e exam.Exam
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		createExam(store, w, r, e)
	}
}

func createExam(store exam.Store, w http.ResponseWriter, r *http.Request, e exam.Exam) {
	e.ID = ""
	if err := e.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	created, err := store.CreateExam(r.Context(), e)
	if err != nil {
		respondStoreError(w, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Exam created successfully",
		"exam":    created,
	})
}

// UpdateExamHandler replaces an exam wholesale. The body may be partial:
// it is decoded over the stored document, then the result is re-validated.
func UpdateExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		current, err := store.GetExam(r.Context(), id)
		if err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&current); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		current.ID = id
		if err := current.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		updated, err := store.ReplaceExam(r.Context(), id, current)
		if err != nil {
			respondStoreError(w, err, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteExamHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.DeleteExam(r.Context(), id); err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
