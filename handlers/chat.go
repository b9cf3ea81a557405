package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/pkg/ratelimit"
	"github.com/ecehan/atelier/services"
)

// ChatHandler, kategori sohbeti endpoint'lerini yöneten struct.
type ChatHandler struct {
	chatService services.ChatService
	msgLimiter  *ratelimit.MessageRateLimiter
}

// NewChatHandler, constructor.
func NewChatHandler(chatService services.ChatService, msgLimiter *ratelimit.MessageRateLimiter) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		msgLimiter:  msgLimiter,
	}
}

// History godoc
// GET /chat?category=Music&offset=0&limit=50
// Kategorinin mesajlarını en yeniden eskiye döner.
//
// Query parametreleri:
// - category: kategori adı (boşsa General)
// - offset: atlanacak mesaj sayısı (default 0)
// - limit: dönecek mesaj sayısı (default 50, max 100)
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	offset, limit := parsePage(r)

	messages, err := h.chatService.History(r.Context(), category, offset, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"items": messages})
}

// Post godoc
// POST /chat
// Yeni mesaj gönderir, kalıcılaştırır ve kategorinin WS abonelerine yayınlar.
//
// Body: { "author": "...", "text": "...", "media_urls": [...], "category": "Music" }
// Yanıt: kaydedilmiş mesaj (id ve created_at dolu) — 201.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
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

	message, err := h.chatService.Post(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// Flag godoc
// POST /chat/{id}/flag
// Mesajı moderasyon için işaretler. Idempotent — tekrar işaretleme no-op.
func (h *ChatHandler) Flag(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.chatService.Flag(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"flagged": true})
}

// Delete godoc
// DELETE /chat/{id}
// Mesajı kalıcı olarak siler.
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseMessageID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.chatService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// parseMessageID, path'teki {id} değerini int64'e çevirir.
func parseMessageID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parsePage, offset/limit query parametrelerini okur.
// Geçersiz değerler sessizce default'a düşer; asıl clamp service'tedir.
func parsePage(r *http.Request) (offset, limit int) {
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return offset, limit
}
