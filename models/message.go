package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, bir chat mesajını temsil eder — hem kategori sohbeti hem oda
// sohbeti aynı tipi kullanır. DB'deki "messages" tablosunun Go karşılığı.
//
// ID store tarafından atanır (append sırasına göre kesin artan sequence).
// Mesaj kaydedildikten sonra değişmez — tek istisna flagged alanının true'ya
// çekilmesi veya kaydın tamamen silinmesidir.
//
// ChannelKey internal partition anahtarıdır; API'ye sızmaz. JSON'da bunun
// yerine category veya room_id alanlarından uygun olanı doldurulur.
type Message struct {
	ID         int64     `json:"id"`
	ChannelKey string    `json:"-"`
	Category   string    `json:"category,omitempty"` // sadece kategori sohbetinde dolu
	RoomID     string    `json:"room_id,omitempty"`  // sadece oda sohbetinde dolu
	Author     string    `json:"author"`
	Text       *string   `json:"text,omitempty"` // Nullable — sadece medya içeren mesajlarda nil
	MediaURLs  []string  `json:"media_urls"`
	Avatar     *string   `json:"avatar,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Flagged    bool      `json:"flagged"`
}

// FillKeyFields, ChannelKey'den Category/RoomID alanlarını doldurur.
// Repository scan sonrası ve append öncesi çağrılır — JSON response'ları
// internal anahtar yerine bu alanları taşır.
func (m *Message) FillKeyFields() {
	m.Category, m.RoomID = SplitKey(m.ChannelKey)
}

// CreateMessageRequest, yeni mesaj gönderme isteği.
// Hem POST /chat (category ile) hem POST /rooms/{id}/messages (category'siz)
// aynı gövdeyi kullanır.
type CreateMessageRequest struct {
	Author    string   `json:"author"`
	Text      string   `json:"text"`
	MediaURLs []string `json:"media_urls"`
	Category  string   `json:"category"`
	Avatar    string   `json:"avatar"`
}

// Validate, CreateMessageRequest'in geçerli olup olmadığını kontrol eder.
// Mesajın text'i veya en az bir medya URL'i olmalı; text en fazla 2000 karakter.
// Author boşsa "Anonymous" kullanılır — bu API'de kimlik doğrulama yoktur,
// yazar etiketi client beyanıdır.
func (r *CreateMessageRequest) Validate() error {
	r.Author = strings.TrimSpace(r.Author)
	if r.Author == "" {
		r.Author = "Anonymous"
	}
	if utf8.RuneCountInString(r.Author) > 100 {
		return fmt.Errorf("author must be at most 100 characters")
	}

	r.Text = strings.TrimSpace(r.Text)
	if utf8.RuneCountInString(r.Text) > 2000 {
		return fmt.Errorf("message text must be at most 2000 characters")
	}

	// Boş medya girdilerini ayıkla
	urls := r.MediaURLs[:0]
	for _, u := range r.MediaURLs {
		u = strings.TrimSpace(u)
		if u != "" {
			urls = append(urls, u)
		}
	}
	r.MediaURLs = urls

	if r.Text == "" && len(r.MediaURLs) == 0 {
		return fmt.Errorf("message must have text or media")
	}

	return nil
}
