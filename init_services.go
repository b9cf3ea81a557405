// Package main — Service katmanı başlatma.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ecehan/atelier/config"
	"github.com/ecehan/atelier/pkg/email"
	"github.com/ecehan/atelier/pkg/ratelimit"
	"github.com/ecehan/atelier/services"
	"github.com/ecehan/atelier/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Chat        services.ChatService
	Room        services.RoomService
	Artwork     services.ArtworkService
	Practice    services.PracticeService
	Performance services.PerformanceService
	Booking     services.BookingService
	Upload      services.UploadService
}

// RateLimiters, handler katmanının kullandığı limiter'ları tutar.
type RateLimiters struct {
	Message *ratelimit.MessageRateLimiter
}

// Stop, arka plan temizleme goroutine'lerini durdurur.
func (r *RateLimiters) Stop() {
	r.Message.Stop()
}

// initServices, repository'ler + hub + config'den tüm service'leri oluşturur.
//
// Email: RESEND_API_KEY boşsa noop sender kullanılır — rezervasyon akışı
// email olmadan da çalışır, sadece onay maili atlanır.
func initServices(repos *Repositories, hub *ws.Hub, cfg *config.Config) (*Services, *RateLimiters, error) {
	uploadService, err := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init upload service: %w", err)
	}

	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
	} else {
		log.Println("[main] RESEND_API_KEY not set, booking confirmation emails disabled")
		emailSender = email.NewNoopSender()
	}

	svcs := &Services{
		Chat:        services.NewChatService(repos.Message, hub),
		Room:        services.NewRoomService(repos.Room, repos.Message, hub),
		Artwork:     services.NewArtworkService(repos.Artwork),
		Practice:    services.NewPracticeService(repos.Practice),
		Performance: services.NewPerformanceService(repos.Performance),
		Booking:     services.NewBookingService(repos.Booking, emailSender),
		Upload:      uploadService,
	}

	// Mesaj spam koruması: 5 saniyede en fazla 10 mesaj, aşımda 15sn cooldown.
	limiters := &RateLimiters{
		Message: ratelimit.NewMessageRateLimiter(10, 5*time.Second, 15*time.Second),
	}

	return svcs, limiters, nil
}
