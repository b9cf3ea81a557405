package services

import (
	"context"
	"fmt"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/pkg/metrics"
	"github.com/ecehan/atelier/repository"
	"github.com/ecehan/atelier/ws"
)

// ChatService, kategori sohbeti iş mantığı interface'i.
type ChatService interface {
	History(ctx context.Context, category string, offset, limit int) ([]models.Message, error)
	Post(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error)
	Flag(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type chatService struct {
	messageRepo repository.MessageRepository
	hub         ws.EventPublisher
}

// NewChatService, constructor.
func NewChatService(messageRepo repository.MessageRepository, hub ws.EventPublisher) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		hub:         hub,
	}
}

// History, bir kategorinin mesajlarını en yeniden eskiye döner.
// category boşsa varsayılan kategori kullanılır.
func (s *chatService) History(ctx context.Context, category string, offset, limit int) ([]models.Message, error) {
	if category == "" {
		category = models.DefaultCategory
	}
	offset, limit = clampPage(offset, limit)

	messages, err := s.messageRepo.ListByChannel(ctx, models.ChatKey(category), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	return messages, nil
}

// Post, mesajı kalıcılaştırır ve kategorinin abonelerine yayınlar.
//
// Sıra önemli: önce DB'ye yaz, sonra broadcast et. Broadcast edilen
// item her zaman DB'deki hali (ID + created_at dolu) — abone olan ve
// sonradan history çeken client aynı mesajı görür.
func (s *chatService) Post(ctx context.Context, req *models.CreateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	message := &models.Message{
		ChannelKey: models.ChatKey(category),
		Author:     req.Author,
		MediaURLs:  req.MediaURLs,
	}
	if message.MediaURLs == nil {
		message.MediaURLs = []string{}
	}
	if req.Text != "" {
		message.Text = &req.Text
	}
	if req.Avatar != "" {
		message.Avatar = &req.Avatar
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}
	message.FillKeyFields()
	metrics.MessagesStored.Inc()

	s.hub.Broadcast(message.ChannelKey, ws.MessageEvent(message))

	return message, nil
}

// Flag, mesajı moderasyon için işaretler. Mesaj görünür kalır —
// sadece flagged alanı işaretlenir. Broadcast edilmez.
func (s *chatService) Flag(ctx context.Context, id int64) error {
	if err := s.messageRepo.Flag(ctx, id); err != nil {
		return fmt.Errorf("failed to flag message %d: %w", id, err)
	}
	return nil
}

// Delete, mesajı kalıcı olarak siler. Bağlı client'lara tombstone
// gönderilmez — silinen mesaj bir sonraki history çekişinde kaybolur.
func (s *chatService) Delete(ctx context.Context, id int64) error {
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", id, err)
	}
	return nil
}

// clampPage, offset/limit değerlerini güvenli aralığa çeker.
// limit default 50, max 100; negatif offset 0 sayılır.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return offset, limit
}
