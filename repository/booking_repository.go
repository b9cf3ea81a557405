package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// BookingRepository, rezervasyon istekleri için veritabanı interface'i.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context) ([]models.Booking, error)
}
