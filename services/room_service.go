package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/pkg/metrics"
	"github.com/ecehan/atelier/repository"
	"github.com/ecehan/atelier/ws"
)

// RoomService, oda iş mantığı interface'i.
//
// RoomExists metodu sayesinde roomService, ws.RoomLookup interface'ini
// de implicit olarak karşılar — WS handler'a ayrıca adapter gerekmez.
type RoomService interface {
	Create(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error)
	List(ctx context.Context, discipline string, status models.RoomStatus) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	RoomExists(ctx context.Context, id string) (bool, error)
	Messages(ctx context.Context, id string, offset, limit int) ([]models.Message, error)
	PostMessage(ctx context.Context, id string, req *models.CreateMessageRequest) (*models.Message, error)
	Pin(ctx context.Context, id string, req *models.PinRequest) (*models.Room, error)
	Close(ctx context.Context, id string) (*models.Room, error)
}

type roomService struct {
	roomRepo    repository.RoomRepository
	messageRepo repository.MessageRepository
	hub         ws.EventPublisher
}

// NewRoomService, constructor.
func NewRoomService(roomRepo repository.RoomRepository, messageRepo repository.MessageRepository, hub ws.EventPublisher) RoomService {
	return &roomService{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		hub:         hub,
	}
}

func (s *roomService) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	room := &models.Room{
		Title:  req.Title,
		Status: models.RoomStatusOpen,
	}
	if req.Discipline != "" {
		room.Discipline = &req.Discipline
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	return room, nil
}

func (s *roomService) List(ctx context.Context, discipline string, status models.RoomStatus) ([]models.Room, error) {
	if status != "" && !models.ValidRoomStatus(string(status)) {
		return nil, fmt.Errorf("%w: invalid room status %q", pkg.ErrBadRequest, status)
	}

	rooms, err := s.roomRepo.List(ctx, discipline, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *roomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}
	return room, nil
}

// RoomExists, WS handler'ın upgrade öncesi varlık kontrolü.
func (s *roomService) RoomExists(ctx context.Context, id string) (bool, error) {
	_, err := s.roomRepo.GetByID(ctx, id)
	if errors.Is(err, pkg.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Messages, odanın mesajlarını en yeniden eskiye döner.
// Olmayan oda 404'tür — boş liste değil.
func (s *roomService) Messages(ctx context.Context, id string, offset, limit int) ([]models.Message, error) {
	if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}
	offset, limit = clampPage(offset, limit)

	messages, err := s.messageRepo.ListByChannel(ctx, models.RoomKey(id), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get room messages: %w", err)
	}
	return messages, nil
}

// PostMessage, oda mesajını kalıcılaştırır ve odanın abonelerine yayınlar.
// Kapalı odaya mesaj gönderilemez.
func (s *roomService) PostMessage(ctx context.Context, id string, req *models.CreateMessageRequest) (*models.Message, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}
	if room.Status == models.RoomStatusClosed {
		return nil, fmt.Errorf("%w: room is closed", pkg.ErrBadRequest)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	message := &models.Message{
		ChannelKey: models.RoomKey(id),
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
		return nil, fmt.Errorf("failed to post room message: %w", err)
	}
	message.FillKeyFields()
	metrics.MessagesStored.Inc()

	s.hub.Broadcast(message.ChannelKey, ws.MessageEvent(message))

	return message, nil
}

// Pin, URL'i odanın pinned_media listesine ekler ve abonelere yayınlar.
// Aynı URL ikinci kez pinlenirse liste değişmez ama pin event'i yine
// yayınlanır — client tarafı idempotent işler.
func (s *roomService) Pin(ctx context.Context, id string, req *models.PinRequest) (*models.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	room, err := s.roomRepo.AppendPin(ctx, id, req.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to pin media to room %s: %w", id, err)
	}

	s.hub.Broadcast(models.RoomKey(id), ws.PinEvent(req.URL))

	return room, nil
}

// Close, odayı kapatır. Bağlı WS oturumları düşürülmez — sadece yeni
// mesaj gönderimi engellenir. Idempotent: kapalı odayı kapatmak no-op.
func (s *roomService) Close(ctx context.Context, id string) (*models.Room, error) {
	if err := s.roomRepo.SetStatus(ctx, id, models.RoomStatusClosed); err != nil {
		return nil, fmt.Errorf("failed to close room %s: %w", id, err)
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}
	return room, nil
}
