package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Booking, bir atölye rezervasyon isteğini temsil eder.
// DB'deki "bookings" tablosunun Go karşılığı.
type Booking struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Topic         *string   `json:"topic,omitempty"`
	PreferredDate *string   `json:"preferred_date,omitempty"`
	Message       *string   `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateBookingRequest, yeni rezervasyon isteği.
type CreateBookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Topic         string `json:"topic"`
	PreferredDate string `json:"preferred_date"`
	Message       string `json:"message"`
}

// Validate, CreateBookingRequest'in geçerli olup olmadığını kontrol eder.
// Email kontrolü bilinçli olarak gevşektir ("@" içermeli) — gerçek doğrulama
// gönderilen onay emailinin teslim edilip edilmemesidir.
func (r *CreateBookingRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}

	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}

	r.Topic = strings.TrimSpace(r.Topic)
	r.PreferredDate = strings.TrimSpace(r.PreferredDate)
	r.Message = strings.TrimSpace(r.Message)

	if utf8.RuneCountInString(r.Message) > 5000 {
		return fmt.Errorf("message must be at most 5000 characters")
	}

	return nil
}
