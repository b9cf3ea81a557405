package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecehan/atelier/models"
)

// sqliteBookingRepo, BookingRepository interface'inin SQLite implementasyonu.
type sqliteBookingRepo struct {
	db *sql.DB
}

// NewSQLiteBookingRepo, constructor — interface döner.
func NewSQLiteBookingRepo(db *sql.DB) BookingRepository {
	return &sqliteBookingRepo{db: db}
}

func (r *sqliteBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, name, email, topic, preferred_date, message)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		booking.Name,
		booking.Email,
		booking.Topic,
		booking.PreferredDate,
		booking.Message,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *sqliteBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT id, name, email, topic, preferred_date, message, created_at
		FROM bookings
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Topic, &b.PreferredDate, &b.Message, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}
