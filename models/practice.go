package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Practice, şehir bazlı bir sürdürülebilirlik girişimini temsil eder.
// DB'deki "practices" tablosunun Go karşılığı.
type Practice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	City        string    `json:"city"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	ImpactScore *int      `json:"impact_score,omitempty"` // 1..5, opsiyonel
	SourceURL   *string   `json:"source_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePracticeRequest, yeni girişim gönderme isteği.
type CreatePracticeRequest struct {
	Title       string   `json:"title"`
	City        string   `json:"city"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImpactScore *int     `json:"impact_score"`
	SourceURL   string   `json:"source_url"`
}

// Validate, CreatePracticeRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreatePracticeRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("practice title must be between 1 and 200 characters")
	}

	r.City = strings.TrimSpace(r.City)
	if r.City == "" {
		return fmt.Errorf("city is required")
	}

	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.SourceURL = strings.TrimSpace(r.SourceURL)

	if r.ImpactScore != nil && (*r.ImpactScore < 1 || *r.ImpactScore > 5) {
		return fmt.Errorf("impact_score must be between 1 and 5")
	}

	tags := r.Tags[:0]
	for _, t := range r.Tags {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	r.Tags = tags

	return nil
}
