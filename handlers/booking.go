package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/services"
)

// BookingHandler, rezervasyon endpoint'lerini yöneten struct.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler, constructor.
func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create godoc
// POST /bookings
// Rezervasyon isteği kaydeder; onay emaili arka planda gönderilir.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, booking)
}

// List godoc
// GET /bookings
// Tüm rezervasyon isteklerini yeniden eskiye listeler.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": bookings})
}
