package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/services"
)

// PracticeHandler, şehir girişimi endpoint'lerini yöneten struct.
type PracticeHandler struct {
	practiceService services.PracticeService
}

// NewPracticeHandler, constructor.
func NewPracticeHandler(practiceService services.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// List godoc
// GET /practices?city=Istanbul&category=transport
func (h *PracticeHandler) List(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	category := r.URL.Query().Get("category")

	practices, err := h.practiceService.List(r.Context(), city, category)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": practices})
}

// Create godoc
// POST /practices
func (h *PracticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	practice, err := h.practiceService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, practice)
}
