package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/ws"
)

// recordingPublisher, broadcast çağrılarını kaydeden test publisher'ı.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	key   string
	event ws.Event
}

func (p *recordingPublisher) Broadcast(channelKey string, event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{key: channelKey, event: event})
}

func (p *recordingPublisher) Presence(channelKey string) int { return 0 }

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// fakeMessageRepo, in-memory MessageRepository — artan ID atar.
type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages []models.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	message.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			msg := r.messages[i]
			return &msg, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeMessageRepo) ListByChannel(_ context.Context, channelKey string, offset, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if r.messages[i].ChannelKey == channelKey {
			out = append(out, r.messages[i])
		}
	}
	if offset >= len(out) {
		return []models.Message{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMessageRepo) Flag(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Flagged = true
			return nil
		}
	}
	return pkg.ErrNotFound
}

func (r *fakeMessageRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return pkg.ErrNotFound
}

func TestChatPostPersistsThenBroadcasts(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &recordingPublisher{}
	svc := NewChatService(repo, pub)

	msg, err := svc.Post(context.Background(), &models.CreateMessageRequest{
		Author:   "mina",
		Text:     "hello",
		Category: "Music",
	})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if msg.ID == 0 {
		t.Fatal("expected assigned message id")
	}
	if msg.Category != "Music" || msg.RoomID != "" {
		t.Fatalf("expected category field set, got %+v", msg)
	}

	events := pub.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(events))
	}
	if events[0].key != models.ChatKey("Music") {
		t.Fatalf("broadcast to wrong channel: %s", events[0].key)
	}
	if events[0].event.Type != ws.EventMessage || events[0].event.Item.ID != msg.ID {
		t.Fatalf("expected persisted message in event, got %+v", events[0].event)
	}
}

func TestChatPostDefaultsToGeneralCategory(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &recordingPublisher{}
	svc := NewChatService(repo, pub)

	msg, err := svc.Post(context.Background(), &models.CreateMessageRequest{Text: "hi"})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	if msg.Category != models.DefaultCategory {
		t.Fatalf("expected default category, got %q", msg.Category)
	}
	if msg.Author != "Anonymous" {
		t.Fatalf("expected anonymous author, got %q", msg.Author)
	}
}

func TestChatPostRejectsEmptyMessage(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &recordingPublisher{}
	svc := NewChatService(repo, pub)

	_, err := svc.Post(context.Background(), &models.CreateMessageRequest{Author: "mina"})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got: %v", err)
	}
	if len(pub.published()) != 0 {
		t.Fatal("invalid message must not be broadcast")
	}
}

func TestChatHistoryClampsPagination(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &recordingPublisher{}
	svc := NewChatService(repo, pub)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Post(ctx, &models.CreateMessageRequest{Text: "m", Category: "Music"}); err != nil {
			t.Fatalf("Post failed: %v", err)
		}
	}

	// Negatif offset ve sıfır limit default'lara düşer.
	messages, err := svc.History(ctx, "Music", -5, 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	// En yeni ilk sırada.
	if messages[0].ID != 3 {
		t.Fatalf("expected newest first, got id %d", messages[0].ID)
	}
}

func TestChatFlagAndDeletePropagateNotFound(t *testing.T) {
	repo := &fakeMessageRepo{}
	svc := NewChatService(repo, &recordingPublisher{})
	ctx := context.Background()

	if err := svc.Flag(ctx, 7); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Flag, got: %v", err)
	}
	if err := svc.Delete(ctx, 7); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Delete, got: %v", err)
	}
}
