package http

import (
	"encoding/json"
	"net/http"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
)

// AddQuestionHandler appends a question to the exam addressed by the five
// metadata fields. The store applies the append as one atomic update.
func AddQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			exam.Filter
			Question string   `json:"question"`
			Choices  []string `json:"choices"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if !req.Filter.Complete() || req.Question == "" {
			respondError(w, http.StatusBadRequest, "All fields are required", nil)
			return
		}
		q := exam.Question{Text: req.Question, Choices: req.Choices}
		if err := q.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		updated, err := store.AppendQuestion(r.Context(), req.Filter, q)
		if err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":     "Question added successfully",
			"updatedExam": updated,
		})
	}
}

// RemoveQuestionHandler deletes the question at a positional index from the
// exam addressed by the metadata fields. Index 0 is valid; an absent index
// is not, which is why the field decodes into a pointer.
func RemoveQuestionHandler(store exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			exam.Filter
			Index *int `json:"index"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if !req.Filter.Complete() || req.Index == nil {
			respondError(w, http.StatusBadRequest, "All fields are required", nil)
			return
		}
		updated, err := store.RemoveQuestion(r.Context(), req.Filter, *req.Index)
		if err != nil {
			respondStoreError(w, err, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Question removed successfully",
			"exam":    updated,
		})
	}
}
