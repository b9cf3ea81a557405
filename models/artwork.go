package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Artwork, galeriye gönderilmiş bir eseri temsil eder.
// DB'deki "artworks" tablosunun Go karşılığı.
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      *string   `json:"artist,omitempty"`
	Category    *string   `json:"category,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateArtworkRequest, yeni eser gönderme isteği.
type CreateArtworkRequest struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

// Validate, CreateArtworkRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateArtworkRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("artwork title must be between 1 and 200 characters")
	}

	r.Artist = strings.TrimSpace(r.Artist)
	r.Category = strings.TrimSpace(r.Category)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Description = strings.TrimSpace(r.Description)

	if utf8.RuneCountInString(r.Description) > 5000 {
		return fmt.Errorf("description must be at most 5000 characters")
	}

	return nil
}
