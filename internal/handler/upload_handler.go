package handlers

import (
	"errors"
	"net/http"
	"snapgram/internal/service"
)

type FilenamesResponse struct {
	Filenames []string `json:"filenames"`
}

// UploadImages accepts a multipart form with up to MaxUploadFiles files
// in the images field, stored under the directory named by the userId
// form field.
func (h *Handlers) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	userID := r.FormValue("userId")
	if userID == "" {
		WriteError(w, "All fields required!", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) > h.Cfg.MaxUploadFiles {
		WriteError(w, "Too many files!", http.StatusBadRequest)
		return
	}

	filenames, err := h.UploadService.SaveImages(r.Context(), userID, files)
	if err != nil {
		if errors.Is(err, service.ErrNotAnImage) {
			WriteError(w, "Only images allowed!", http.StatusBadRequest)
			return
		}
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, FilenamesResponse{Filenames: filenames}, http.StatusOK)
}
