package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// RoomRepository, oda (canlı seans) veritabanı işlemleri için interface.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	// List, discipline ve status boş string ise filtre uygulamaz.
	List(ctx context.Context, discipline string, status models.RoomStatus) ([]models.Room, error)
	// AppendPin, URL'i odanın pinned_media listesine ekler.
	// Aynı URL zaten listede varsa liste değişmez (idempotent).
	AppendPin(ctx context.Context, id string, url string) (*models.Room, error)
	SetStatus(ctx context.Context, id string, status models.RoomStatus) error
}
