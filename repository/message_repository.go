package repository

import (
	"context"

	"github.com/ecehan/atelier/models"
)

// MessageRepository, mesaj veritabanı işlemleri için interface.
//
// ListByChannel offset-based pagination kullanır:
// en yeni mesajdan geriye doğru, offset kadar atlayıp limit kadar döner.
// ID'ler AUTOINCREMENT olduğu için "en yeni" = en büyük ID.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	ListByChannel(ctx context.Context, channelKey string, offset, limit int) ([]models.Message, error)
	Flag(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
