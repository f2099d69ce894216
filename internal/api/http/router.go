package http

import (
	"net/http"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/storage"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the API surface. Middleware (logging, CORS, timeouts) is
// applied by the caller around the returned handler.
func NewRouter(store exam.Store, blobs storage.BlobStore, maxUpload int64) http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Exams API is running"))
	})

	r.Route("/exams", func(er chi.Router) {
		er.Get("/", ListExamsHandler(store))
		er.Post("/", CreateExamHandler(store, blobs, maxUpload))

		// Static routes must be declared alongside the {id} routes; chi
		// matches them before the parameter pattern.
		er.Put("/add-question", AddQuestionHandler(store))
		er.Delete("/remove-question", RemoveQuestionHandler(store))

		er.Get("/{id}", GetExamHandler(store))
		er.Put("/{id}", UpdateExamHandler(store))
		er.Delete("/{id}", DeleteExamHandler(store))
	})

	r.Get("/uploads/{filename}", ServeUploadHandler(blobs))

	return r
}
