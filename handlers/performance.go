package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/services"
)

// PerformanceHandler, sahne performansı endpoint'lerini yöneten struct.
type PerformanceHandler struct {
	performanceService services.PerformanceService
}

// NewPerformanceHandler, constructor.
func NewPerformanceHandler(performanceService services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

// List godoc
// GET /performances?city=Berlin&discipline=Dance
func (h *PerformanceHandler) List(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	discipline := r.URL.Query().Get("discipline")

	performances, err := h.performanceService.List(r.Context(), city, discipline)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": performances})
}

// Create godoc
// POST /performances
func (h *PerformanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	performance, err := h.performanceService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, performance)
}
