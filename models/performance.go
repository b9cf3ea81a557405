package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Performance, planlanmış veya kaydedilmiş bir sahne performansını temsil eder.
// DB'deki "performances" tablosunun Go karşılığı.
//
// ScheduledAt serbest metin tutulur (frontend datetime-local değeri gönderir);
// sıralama created_at üzerindendir.
type Performance struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Artist        string    `json:"artist"`
	Discipline    *string   `json:"discipline,omitempty"`
	City          *string   `json:"city,omitempty"`
	ScheduledAt   *string   `json:"scheduled_at,omitempty"`
	LiveURL       *string   `json:"live_url,omitempty"`
	RecordingURLs []string  `json:"recording_urls"`
	Description   *string   `json:"description,omitempty"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePerformanceRequest, yeni performans gönderme isteği.
type CreatePerformanceRequest struct {
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Discipline    string   `json:"discipline"`
	City          string   `json:"city"`
	ScheduledAt   string   `json:"scheduled_at"`
	LiveURL       string   `json:"live_url"`
	RecordingURLs []string `json:"recording_urls"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
}

// Validate, CreatePerformanceRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreatePerformanceRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("performance title must be between 1 and 200 characters")
	}

	r.Artist = strings.TrimSpace(r.Artist)
	if r.Artist == "" {
		return fmt.Errorf("artist is required")
	}

	r.Discipline = strings.TrimSpace(r.Discipline)
	r.City = strings.TrimSpace(r.City)
	r.ScheduledAt = strings.TrimSpace(r.ScheduledAt)
	r.LiveURL = strings.TrimSpace(r.LiveURL)
	r.Description = strings.TrimSpace(r.Description)

	urls := r.RecordingURLs[:0]
	for _, u := range r.RecordingURLs {
		u = strings.TrimSpace(u)
		if u != "" {
			urls = append(urls, u)
		}
	}
	r.RecordingURLs = urls

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
