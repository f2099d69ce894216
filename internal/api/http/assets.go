package http

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/storage"

	"github.com/go-chi/chi/v5"
)

// ServeUploadHandler streams a stored image back under /uploads/{filename}.
func ServeUploadHandler(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")
		rc, err := blobs.Get(name)
		if err != nil {
			respondError(w, http.StatusNotFound, "File not found", nil)
			return
		}
		defer rc.Close()

		ct := mime.TypeByExtension(filepath.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = io.Copy(w, rc)
	}
}
