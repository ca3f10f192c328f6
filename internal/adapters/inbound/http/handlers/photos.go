package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/usecases/commands"
	"github.com/architeacher/gadgets/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const (
	formFile      = "file"
	formPhotoType = "photo_type"

	// multipartOverhead leaves room for the form boundaries and the photo_type field.
	multipartOverhead = 1 << 20

	msgMissingFile = "Please select an image file"
	msgTooLarge    = "Image must be less than 10MB"
)

// UploadPhoto stores a multipart image and answers with its public URL.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, codeValidationFailed, msgTooLarge)

			return
		}

		writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, msgMissingFile)

		return
	}

	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(formFile)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, msgMissingFile)

		return
	}
	defer file.Close()

	url, err := h.app.Commands.UploadPhoto.Handle(r.Context(), commands.UploadPhotoCommand{
		Upload: ports.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get(contentTypeHeader),
			Size:        header.Size,
			PhotoType:   r.FormValue(formPhotoType),
			Content:     file,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPhoto):
			writeErrorResponse(w, http.StatusBadRequest, codeValidationFailed, msgMissingFile)
		case errors.Is(err, model.ErrPhotoTooLarge):
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, codeValidationFailed, msgTooLarge)
		default:
			h.handleError(w, r, err)
		}

		return
	}

	writeJSONResponse(w, http.StatusOK, uploadResponse{URL: url})
}

func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.app.Queries.OpenPhoto.Execute(r.Context(), queries.OpenPhotoQuery{Name: chi.URLParam(r, "name")})
	if err != nil {
		h.handleError(w, r, err)

		return
	}
	defer photo.Content.Close()

	w.Header().Set(contentTypeHeader, photo.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(photo.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		_, _ = io.Copy(w, photo.Content)
	}
}
