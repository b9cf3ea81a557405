package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// PerformanceRepository, sahne performansları için veritabanı interface'i.
type PerformanceRepository interface {
	Create(ctx context.Context, performance *models.Performance) error
	// List, city ve discipline boş string ise filtre uygulamaz.
	List(ctx context.Context, city, discipline string) ([]models.Performance, error)
}
