package repository

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/ecehan/atelier/database"
	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
)

// newTestDB, geçici dizinde migration'ları uygulanmış bir test DB'si açar.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func createMessage(t *testing.T, repo MessageRepository, channelKey, author, text string) *models.Message {
	t.Helper()

	msg := &models.Message{
		ChannelKey: channelKey,
		Author:     author,
		MediaURLs:  []string{},
	}
	if text != "" {
		msg.Text = &text
	}
	if err := repo.Create(context.Background(), msg); err != nil {
		t.Fatalf("failed to create message: %v", err)
	}
	return msg
}

func TestMessageCreateAssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	key := models.ChatKey("Music")

	var lastID int64
	for i := 0; i < 5; i++ {
		msg := createMessage(t, repo, key, "mina", "hello")
		if msg.ID <= lastID {
			t.Fatalf("expected strictly increasing IDs, got %d after %d", msg.ID, lastID)
		}
		if msg.CreatedAt.IsZero() {
			t.Fatal("expected created_at to be set")
		}
		lastID = msg.ID
	}
}

func TestMessageListByChannelNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()
	key := models.ChatKey("Music")

	first := createMessage(t, repo, key, "mina", "first")
	second := createMessage(t, repo, key, "arda", "second")
	third := createMessage(t, repo, key, "mina", "third")

	messages, err := repo.ListByChannel(ctx, key, 0, 50)
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].ID != third.ID || messages[1].ID != second.ID || messages[2].ID != first.ID {
		t.Fatalf("expected newest-first order, got %d %d %d",
			messages[0].ID, messages[1].ID, messages[2].ID)
	}

	// Offset sonraki sayfayı verir.
	page, err := repo.ListByChannel(ctx, key, 1, 1)
	if err != nil {
		t.Fatalf("ListByChannel with offset failed: %v", err)
	}
	if len(page) != 1 || page[0].ID != second.ID {
		t.Fatalf("expected second message on page, got %+v", page)
	}
}

func TestMessageChannelIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	// Aynı isimli kategori ve oda ayrı partition'lardır.
	createMessage(t, repo, models.ChatKey("Music"), "mina", "in chat")
	createMessage(t, repo, models.RoomKey("Music"), "arda", "in room")
	createMessage(t, repo, models.ChatKey("Sculpture"), "kim", "elsewhere")

	messages, err := repo.ListByChannel(ctx, models.ChatKey("Music"), 0, 50)
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message in chat:Music, got %d", len(messages))
	}
	if messages[0].Category != "Music" || messages[0].RoomID != "" {
		t.Fatalf("expected category field filled, got %+v", messages[0])
	}

	roomMsgs, err := repo.ListByChannel(ctx, models.RoomKey("Music"), 0, 50)
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if len(roomMsgs) != 1 || roomMsgs[0].RoomID != "Music" || roomMsgs[0].Category != "" {
		t.Fatalf("expected room_id field filled, got %+v", roomMsgs)
	}
}

func TestMessageListEmptyChannel(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)

	messages, err := repo.ListByChannel(context.Background(), models.ChatKey("Nobody"), 0, 50)
	if err != nil {
		t.Fatalf("ListByChannel failed: %v", err)
	}
	if messages == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(messages))
	}
}

func TestMessageMediaURLsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()
	key := models.RoomKey("r1")

	msg := &models.Message{
		ChannelKey: key,
		Author:     "mina",
		MediaURLs:  []string{"/uploads/a.png", "/uploads/b.mp4"},
	}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MediaURLs) != 2 || got.MediaURLs[0] != "/uploads/a.png" {
		t.Fatalf("unexpected media urls: %+v", got.MediaURLs)
	}
	if got.Text != nil {
		t.Fatalf("expected nil text for media-only message, got %q", *got.Text)
	}
}

func TestMessageFlagIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	msg := createMessage(t, repo, models.ChatKey("Music"), "mina", "hmm")

	if err := repo.Flag(ctx, msg.ID); err != nil {
		t.Fatalf("Flag failed: %v", err)
	}
	if err := repo.Flag(ctx, msg.ID); err != nil {
		t.Fatalf("second Flag should be a no-op, got: %v", err)
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Flagged {
		t.Fatal("expected message to be flagged")
	}

	if err := repo.Flag(ctx, 99999); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing message, got: %v", err)
	}
}

func TestMessageDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	msg := createMessage(t, repo, models.ChatKey("Music"), "mina", "bye")

	if err := repo.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, msg.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := repo.Delete(ctx, msg.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}
