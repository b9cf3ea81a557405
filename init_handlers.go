// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/ecehan/atelier/config"
	"github.com/ecehan/atelier/handlers"
)

// Handlers, tüm HTTP handler instance'larını tutan container struct.
type Handlers struct {
	Chat        *handlers.ChatHandler
	Room        *handlers.RoomHandler
	Artwork     *handlers.ArtworkHandler
	Practice    *handlers.PracticeHandler
	Performance *handlers.PerformanceHandler
	Booking     *handlers.BookingHandler
	Upload      *handlers.UploadHandler
}

// initHandlers, service'lerden tüm handler'ları oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, cfg *config.Config) *Handlers {
	return &Handlers{
		Chat:        handlers.NewChatHandler(svcs.Chat, limiters.Message),
		Room:        handlers.NewRoomHandler(svcs.Room, limiters.Message),
		Artwork:     handlers.NewArtworkHandler(svcs.Artwork),
		Practice:    handlers.NewPracticeHandler(svcs.Practice),
		Performance: handlers.NewPerformanceHandler(svcs.Performance),
		Booking:     handlers.NewBookingHandler(svcs.Booking),
		Upload:      handlers.NewUploadHandler(svcs.Upload, cfg.Upload.MaxSize),
	}
}
