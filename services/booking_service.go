package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/pkg/email"
	"github.com/ecehan/atelier/repository"
)

// BookingService, atölye rezervasyonları iş mantığı interface'i.
type BookingService interface {
	Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	emailSender email.EmailSender
}

// NewBookingService, constructor.
func NewBookingService(bookingRepo repository.BookingRepository, emailSender email.EmailSender) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		emailSender: emailSender,
	}
}

// Create, rezervasyonu kaydeder ve onay emailini arka planda gönderir.
// Email gönderimi best-effort: başarısız olsa bile rezervasyon kaydı
// geçerlidir, sadece log'a düşer.
func (s *bookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	booking := &models.Booking{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Topic != "" {
		booking.Topic = &req.Topic
	}
	if req.PreferredDate != "" {
		booking.PreferredDate = &req.PreferredDate
	}
	if req.Message != "" {
		booking.Message = &req.Message
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	// Request context'i handler dönünce iptal olur — email goroutine'i
	// kendi context'iyle çalışır.
	go func(toEmail, name, topic string) {
		if err := s.emailSender.SendBookingConfirmation(context.Background(), toEmail, name, topic); err != nil {
			log.Printf("[booking] failed to send confirmation email to %s: %v", toEmail, err)
		}
	}(booking.Email, booking.Name, req.Topic)

	return booking, nil
}

func (s *bookingService) List(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
