package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
)

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db *sql.DB) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.Message) error {
	// media_urls JSON TEXT kolonunda saklanır.
	// nil slice bile '[]' olarak yazılır — okuma tarafı null görmez.
	mediaJSON, err := json.Marshal(message.MediaURLs)
	if err != nil {
		return fmt.Errorf("failed to marshal media urls: %w", err)
	}

	query := `
		INSERT INTO messages (channel_key, author, text, media_urls, avatar)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	// AUTOINCREMENT sayesinde ID'ler kesin artan sırada atanır.
	// SQLite tek yazıcı olduğu için aynı kanaldaki iki POST asla
	// aynı ID'yi alamaz — sıralama garantisi buradan gelir.
	err = r.db.QueryRowContext(ctx, query,
		message.ChannelKey,
		message.Author,
		message.Text,
		string(mediaJSON),
		message.Avatar,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `
		SELECT id, channel_key, author, text, media_urls, avatar, flagged, created_at
		FROM messages
		WHERE id = ?`

	msg, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	return msg, nil
}

// ListByChannel, bir kanalın mesajlarını en yeniden eskiye doğru getirir.
// Frontend listeyi ters çevirip en yeniyi altta gösterir.
func (r *sqliteMessageRepo) ListByChannel(ctx context.Context, channelKey string, offset, limit int) ([]models.Message, error) {
	query := `
		SELECT id, channel_key, author, text, media_urls, avatar, flagged, created_at
		FROM messages
		WHERE channel_key = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, channelKey, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	// Boş kanal için nil yerine boş slice — JSON'da null değil [] görünsün.
	messages := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}

// Flag, mesajı moderasyon için işaretler. Idempotent — zaten işaretli
// bir mesajı tekrar işaretlemek hata değildir.
func (r *sqliteMessageRepo) Flag(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE messages SET flagged = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to flag message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteMessageRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// rowScanner, hem *sql.Row hem *sql.Rows için ortak scan arayüzü.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	msg := &models.Message{}
	var mediaJSON string
	var flagged int

	err := row.Scan(
		&msg.ID, &msg.ChannelKey, &msg.Author, &msg.Text,
		&mediaJSON, &msg.Avatar, &flagged, &msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(mediaJSON), &msg.MediaURLs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal media urls: %w", err)
	}
	if msg.MediaURLs == nil {
		msg.MediaURLs = []string{}
	}
	msg.Flagged = flagged != 0
	msg.FillKeyFields()

	return msg, nil
}
