package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecehan/atelier/models"
)

// sqlitePracticeRepo, PracticeRepository interface'inin SQLite implementasyonu.
type sqlitePracticeRepo struct {
	db *sql.DB
}

// NewSQLitePracticeRepo, constructor — interface döner.
func NewSQLitePracticeRepo(db *sql.DB) PracticeRepository {
	return &sqlitePracticeRepo{db: db}
}

func (r *sqlitePracticeRepo) Create(ctx context.Context, practice *models.Practice) error {
	tagsJSON, err := json.Marshal(practice.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO practices (id, title, city, category, description, tags, impact_score, source_url)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		practice.Title,
		practice.City,
		practice.Category,
		practice.Description,
		string(tagsJSON),
		practice.ImpactScore,
		practice.SourceURL,
	).Scan(&practice.ID, &practice.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create practice: %w", err)
	}

	return nil
}

func (r *sqlitePracticeRepo) List(ctx context.Context, city, category string) ([]models.Practice, error) {
	query := `
		SELECT id, title, city, category, description, tags, impact_score, source_url, created_at
		FROM practices`
	var conds []string
	var args []any

	if city != "" {
		conds = append(conds, `city = ?`)
		args = append(args, city)
	}
	if category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, category)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list practices: %w", err)
	}
	defer rows.Close()

	practices := []models.Practice{}
	for rows.Next() {
		var p models.Practice
		var tagsJSON string
		if err := rows.Scan(&p.ID, &p.Title, &p.City, &p.Category, &p.Description, &tagsJSON, &p.ImpactScore, &p.SourceURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan practice: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		practices = append(practices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate practices: %w", err)
	}

	return practices, nil
}
