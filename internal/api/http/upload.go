package http

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/storage"

	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// createExamMultipart handles the multipart variant of POST /exams: the
// metadata fields arrive as form values, the question list as a JSON string
// in the "exam" field, and images as files under "images" (or "image").
// Files bind to questions by position; extra files are dropped and
// questions without a file keep an empty image.
func createExamMultipart(store exam.Store, blobs storage.BlobStore, maxUpload int64, w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Upload too large or malformed", err)
		return
	}

	e := exam.Exam{
		Division: r.FormValue("division"),
		Level:    r.FormValue("level"),
		Term:     r.FormValue("term"),
		Subject:  r.FormValue("subject"),
		Year:     r.FormValue("year"),
	}
	if raw := r.FormValue("exam"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &e.Questions); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid questions payload", err)
			return
		}
	}
	if err := e.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		files = r.MultipartForm.File["image"]
	}
	for i, fh := range files {
		if i >= len(e.Questions) {
			break // more files than questions: drop the extras
		}
		url, err := storeImage(blobs, fh)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Image upload failed", err)
			return
		}
		e.Questions[i].Image = url
	}

	createExam(store, w, r, e)
}

func storeImage(blobs storage.BlobStore, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", &exam.ValidationError{Reason: "unsupported image type " + ext}
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key, err := blobs.Put(uuid.NewString()+ext, f)
	if err != nil {
		return "", err
	}
	return blobs.URL(key), nil
}
