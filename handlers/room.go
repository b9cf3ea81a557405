package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/pkg/ratelimit"
	"github.com/ecehan/atelier/services"
)

// RoomHandler, oda endpoint'lerini yöneten struct.
type RoomHandler struct {
	roomService services.RoomService
	msgLimiter  *ratelimit.MessageRateLimiter
}

// NewRoomHandler, constructor.
func NewRoomHandler(roomService services.RoomService, msgLimiter *ratelimit.MessageRateLimiter) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		msgLimiter:  msgLimiter,
	}
}

// List godoc
// GET /rooms?discipline=Dance&status=open
// Odaları en yeniden eskiye listeler.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	discipline := r.URL.Query().Get("discipline")
	status := models.RoomStatus(r.URL.Query().Get("status"))

	rooms, err := h.roomService.List(r.Context(), discipline, status)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": rooms})
}

// Create godoc
// POST /rooms
// Yeni oda açar. Body: { "title": "...", "discipline": "..." }
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.roomService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, room)
}

// Get godoc
// GET /rooms/{id}
// Tek odayı döner (kapalı olsa bile).
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, room)
}

// Messages godoc
// GET /rooms/{id}/messages?offset=0&limit=50
// Odanın mesajlarını en yeniden eskiye döner. Olmayan oda 404.
func (h *RoomHandler) Messages(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)

	messages, err := h.roomService.Messages(r.Context(), r.PathValue("id"), offset, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": messages})
}

// PostMessage godoc
// POST /rooms/{id}/messages
// Odaya mesaj gönderir. Kapalı odaya gönderim 400.
func (h *RoomHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if !h.msgLimiter.Allow(ip) {
		retryAfter := h.msgLimiter.CooldownSeconds(ip)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests, "too many messages, slow down")
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.roomService.PostMessage(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// Pin godoc
// POST /rooms/{id}/pin
// Odaya medya pinler. İki gövde formatı kabul edilir:
// - form-data / x-www-form-urlencoded: url field'ı (frontend bunu kullanır)
// - JSON: { "url": "..." }
// Yanıt: güncel oda — pinned_media dahil.
func (h *RoomHandler) Pin(w http.ResponseWriter, r *http.Request) {
	var req models.PinRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		// ParseMultipartForm urlencoded form'u da işler.
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.URL = r.FormValue("url")
	}

	room, err := h.roomService.Pin(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, room)
}

// Close godoc
// POST /rooms/{id}/close
// Odayı kapatır — yeni mesaj kabul edilmez, geçmiş ve pinler kalır.
func (h *RoomHandler) Close(w http.ResponseWriter, r *http.Request) {
	room, err := h.roomService.Close(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, room)
}
