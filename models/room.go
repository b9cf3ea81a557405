package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// RoomStatus, odanın yaşam döngüsü durumunu temsil eder.
// Go'da enum yerine typed constant kullanılır.
type RoomStatus string

const (
	RoomStatusOpen   RoomStatus = "open"
	RoomStatusClosed RoomStatus = "closed"
)

// Room, canlı bir oturum odasını temsil eder. DB'deki "rooms" tablosunun
// Go karşılığı.
//
// Kategori kanallarından farkı: oda açıkça oluşturulur, metadata taşır ve
// pinlenmiş medya listesi tutar. Oda sohbeti aynı Channel/broadcast
// mekanizmasını RoomKey(id) anahtarıyla paylaşır.
//
// PinnedMedia append-only büyür; status open→closed yönünde geçer
// (kapalı odalar varsayılan listelemeden düşer ama id ile erişilebilir).
type Room struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Discipline  *string    `json:"discipline,omitempty"`
	Status      RoomStatus `json:"status"`
	PinnedMedia []string   `json:"pinned_media"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateRoomRequest, yeni oda açma isteği.
type CreateRoomRequest struct {
	Title      string `json:"title"`
	Discipline string `json:"discipline"`
}

// Validate, CreateRoomRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateRoomRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("room title must be between 1 and 200 characters")
	}

	r.Discipline = strings.TrimSpace(r.Discipline)
	if utf8.RuneCountInString(r.Discipline) > 100 {
		return fmt.Errorf("discipline must be at most 100 characters")
	}

	return nil
}

// PinRequest, odaya medya pinleme isteği (JSON gövde varyantı;
// handler form field'ı da kabul eder).
type PinRequest struct {
	URL string `json:"url"`
}

// Validate, PinRequest'in geçerli olup olmadığını kontrol eder.
func (r *PinRequest) Validate() error {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		return fmt.Errorf("url is required")
	}
	if len(r.URL) > 2048 {
		return fmt.Errorf("url must be at most 2048 characters")
	}
	return nil
}

// ValidRoomStatus, liste filtresi için status değerini kontrol eder.
// Boş string "filtre yok" anlamına gelir.
func ValidRoomStatus(s string) bool {
	switch RoomStatus(s) {
	case RoomStatusOpen, RoomStatusClosed:
		return true
	}
	return s == ""
}
