package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// ArtworkRepository, galeri eserleri için veritabanı interface'i.
type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.Artwork) error
	List(ctx context.Context) ([]models.Artwork, error)
	Count(ctx context.Context) (int, error)
}
