package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ecehan/atelier/models"
)

// sqlitePerformanceRepo, PerformanceRepository interface'inin SQLite implementasyonu.
type sqlitePerformanceRepo struct {
	db *sql.DB
}

// NewSQLitePerformanceRepo, constructor — interface döner.
func NewSQLitePerformanceRepo(db *sql.DB) PerformanceRepository {
	return &sqlitePerformanceRepo{db: db}
}

func (r *sqlitePerformanceRepo) Create(ctx context.Context, performance *models.Performance) error {
	recordingsJSON, err := json.Marshal(performance.RecordingURLs)
	if err != nil {
		return fmt.Errorf("failed to marshal recording urls: %w", err)
	}
	tagsJSON, err := json.Marshal(performance.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO performances (id, title, artist, discipline, city, scheduled_at, live_url, recording_urls, description, tags)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		performance.Title,
		performance.Artist,
		performance.Discipline,
		performance.City,
		performance.ScheduledAt,
		performance.LiveURL,
		string(recordingsJSON),
		performance.Description,
		string(tagsJSON),
	).Scan(&performance.ID, &performance.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create performance: %w", err)
	}

	return nil
}

func (r *sqlitePerformanceRepo) List(ctx context.Context, city, discipline string) ([]models.Performance, error) {
	query := `
		SELECT id, title, artist, discipline, city, scheduled_at, live_url, recording_urls, description, tags, created_at
		FROM performances
		WHERE 1=1`
	var args []any

	if city != "" {
		query += ` AND city = ?`
		args = append(args, city)
	}
	if discipline != "" {
		query += ` AND discipline = ?`
		args = append(args, discipline)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}
	defer rows.Close()

	performances := []models.Performance{}
	for rows.Next() {
		var p models.Performance
		var recordingsJSON, tagsJSON string
		err := rows.Scan(
			&p.ID, &p.Title, &p.Artist, &p.Discipline, &p.City,
			&p.ScheduledAt, &p.LiveURL, &recordingsJSON, &p.Description, &tagsJSON, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}
		if err := json.Unmarshal([]byte(recordingsJSON), &p.RecordingURLs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recording urls: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		if p.RecordingURLs == nil {
			p.RecordingURLs = []string{}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		performances = append(performances, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate performances: %w", err)
	}

	return performances, nil
}
