package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecehan/atelier/database"
	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
)

// sqliteRoomRepo, RoomRepository interface'inin SQLite implementasyonu.
type sqliteRoomRepo struct {
	db *sql.DB
}

// NewSQLiteRoomRepo, constructor — interface döner.
func NewSQLiteRoomRepo(db *sql.DB) RoomRepository {
	return &sqliteRoomRepo{db: db}
}

func (r *sqliteRoomRepo) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, title, discipline, status, pinned_media)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, '[]')
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		room.Title,
		room.Discipline,
		room.Status,
	).Scan(&room.ID, &room.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	room.PinnedMedia = []string{}
	return nil
}

func (r *sqliteRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	query := `
		SELECT id, title, discipline, status, pinned_media, created_at
		FROM rooms
		WHERE id = ?`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	return room, nil
}

func (r *sqliteRoomRepo) List(ctx context.Context, discipline string, status models.RoomStatus) ([]models.Room, error) {
	query := `
		SELECT id, title, discipline, status, pinned_media, created_at
		FROM rooms
		WHERE 1=1`
	var args []any

	if discipline != "" {
		query += ` AND discipline = ?`
		args = append(args, discipline)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

// AppendPin, read-modify-write olduğu için transaction içinde çalışır.
// Aynı odaya eş zamanlı iki pin isteği birbirinin eklediğini ezmemeli.
func (r *sqliteRoomRepo) AppendPin(ctx context.Context, id string, url string) (*models.Room, error) {
	var updated *models.Room

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		room, err := scanRoom(tx.QueryRowContext(ctx,
			`SELECT id, title, discipline, status, pinned_media, created_at FROM rooms WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return pkg.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get room for pin: %w", err)
		}

		for _, existing := range room.PinnedMedia {
			if existing == url {
				updated = room
				return nil
			}
		}

		room.PinnedMedia = append(room.PinnedMedia, url)
		pinnedJSON, err := json.Marshal(room.PinnedMedia)
		if err != nil {
			return fmt.Errorf("failed to marshal pinned media: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE rooms SET pinned_media = ? WHERE id = ?`, string(pinnedJSON), id); err != nil {
			return fmt.Errorf("failed to update pinned media: %w", err)
		}

		updated = room
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *sqliteRoomRepo) SetStatus(ctx context.Context, id string, status models.RoomStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE rooms SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set room status: %w", err)
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

func scanRoom(row rowScanner) (*models.Room, error) {
	room := &models.Room{}
	var pinnedJSON string

	err := row.Scan(
		&room.ID, &room.Title, &room.Discipline,
		&room.Status, &pinnedJSON, &room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(pinnedJSON), &room.PinnedMedia); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pinned media: %w", err)
	}
	if room.PinnedMedia == nil {
		room.PinnedMedia = []string{}
	}

	return room, nil
}
