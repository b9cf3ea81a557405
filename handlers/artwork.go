package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/services"
)

// ArtworkHandler, galeri endpoint'lerini yöneten struct.
type ArtworkHandler struct {
	artworkService services.ArtworkService
}

// NewArtworkHandler, constructor.
func NewArtworkHandler(artworkService services.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{artworkService: artworkService}
}

// List godoc
// GET /api/artworks
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.artworkService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": artworks})
}

// Create godoc
// POST /api/artworks
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArtworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artwork, err := h.artworkService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, artwork)
}

// Seed godoc
// POST /api/seed
// Galeri boşsa örnek eserleri yükler. Doluysa no-op.
func (h *ArtworkHandler) Seed(w http.ResponseWriter, r *http.Request) {
	seeded, err := h.artworkService.Seed(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"seeded": seeded})
}
