package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecehan/atelier/models"
)

// sqliteArtworkRepo, ArtworkRepository interface'inin SQLite implementasyonu.
type sqliteArtworkRepo struct {
	db *sql.DB
}

// NewSQLiteArtworkRepo, constructor — interface döner.
func NewSQLiteArtworkRepo(db *sql.DB) ArtworkRepository {
	return &sqliteArtworkRepo{db: db}
}

func (r *sqliteArtworkRepo) Create(ctx context.Context, artwork *models.Artwork) error {
	query := `
		INSERT INTO artworks (id, title, artist, category, image_url, description)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		artwork.Title,
		artwork.Artist,
		artwork.Category,
		artwork.ImageURL,
		artwork.Description,
	).Scan(&artwork.ID, &artwork.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create artwork: %w", err)
	}

	return nil
}

func (r *sqliteArtworkRepo) List(ctx context.Context) ([]models.Artwork, error) {
	query := `
		SELECT id, title, artist, category, image_url, description, created_at
		FROM artworks
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	defer rows.Close()

	artworks := []models.Artwork{}
	for rows.Next() {
		var a models.Artwork
		if err := rows.Scan(&a.ID, &a.Title, &a.Artist, &a.Category, &a.ImageURL, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artworks: %w", err)
	}

	return artworks, nil
}

func (r *sqliteArtworkRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artworks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count artworks: %w", err)
	}
	return count, nil
}
