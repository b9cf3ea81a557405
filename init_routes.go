// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
package main

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecehan/atelier/config"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/ws"
)

// initRoutes, tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Go 1.22 router'ında literal path'ler parametrik
// path'lerden önceliklidir, ama okunabilirlik için yine gruplu yazıyoruz.
func initRoutes(mux *http.ServeMux, h *Handlers, wsHandler *ws.Handler, cfg *config.Config) {
	// ─── Health & Metrics ───
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// ─── Kategori Sohbeti ───
	mux.HandleFunc("GET /chat", h.Chat.History)
	mux.HandleFunc("POST /chat", h.Chat.Post)
	mux.HandleFunc("POST /chat/{id}/flag", h.Chat.Flag)
	mux.HandleFunc("DELETE /chat/{id}", h.Chat.Delete)

	// ─── Odalar ───
	mux.HandleFunc("GET /rooms", h.Room.List)
	mux.HandleFunc("POST /rooms", h.Room.Create)
	mux.HandleFunc("GET /rooms/{id}", h.Room.Get)
	mux.HandleFunc("GET /rooms/{id}/messages", h.Room.Messages)
	mux.HandleFunc("POST /rooms/{id}/messages", h.Room.PostMessage)
	mux.HandleFunc("POST /rooms/{id}/pin", h.Room.Pin)
	mux.HandleFunc("POST /rooms/{id}/close", h.Room.Close)

	// ─── WebSocket ───
	mux.HandleFunc("GET /ws/chat", wsHandler.HandleChat)
	mux.HandleFunc("GET /ws/rooms/{id}", wsHandler.HandleRoom)

	// ─── Galeri ───
	mux.HandleFunc("GET /api/artworks", h.Artwork.List)
	mux.HandleFunc("POST /api/artworks", h.Artwork.Create)
	mux.HandleFunc("POST /api/seed", h.Artwork.Seed)

	// ─── Şehir Girişimleri ───
	mux.HandleFunc("GET /practices", h.Practice.List)
	mux.HandleFunc("POST /practices", h.Practice.Create)

	// ─── Performanslar ───
	mux.HandleFunc("GET /performances", h.Performance.List)
	mux.HandleFunc("POST /performances", h.Performance.Create)

	// ─── Rezervasyonlar ───
	mux.HandleFunc("GET /bookings", h.Booking.List)
	mux.HandleFunc("POST /bookings", h.Booking.Create)

	// ─── Upload & Static ───
	mux.HandleFunc("POST /upload", h.Upload.Upload)

	// Static file serving — yüklenen dosyalara erişim.
	// http.FileServer ".." path'lerini zaten reddeder; ek olarak sadece
	// düz dosya isimlerini kabul edip subdirectory'leri engelliyoruz.
	uploadsHandler := http.StripPrefix("/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /uploads/", uploadsHandler)
}
