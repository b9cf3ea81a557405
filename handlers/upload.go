package handlers

import (
	"net/http"

	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/services"
)

// UploadHandler, medya yükleme endpoint'ini yöneten struct.
type UploadHandler struct {
	uploadService services.UploadService
	maxUploadSize int64
}

// NewUploadHandler, constructor.
func NewUploadHandler(uploadService services.UploadService, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxUploadSize: maxUploadSize,
	}
}

// Upload godoc
// POST /upload
// multipart/form-data, "file" field'ı. Yanıt: { "url": "/uploads/..." }
//
// Dönen URL mesajların media_urls alanında veya oda pinlerinde kullanılır.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// MaxBytesReader, body'yi limit aşımında keser — dev dosya RAM'e inmez.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart body or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]any{"url": url})
}
