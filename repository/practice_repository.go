package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// PracticeRepository, şehir girişimleri için veritabanı interface'i.
type PracticeRepository interface {
	Create(ctx context.Context, practice *models.Practice) error
	// List, boş string geçilen filtreleri atlar.
	List(ctx context.Context, city, category string) ([]models.Practice, error)
}
