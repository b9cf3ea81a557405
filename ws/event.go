package ws

import "github.com/ecehan/atelier/models"

// Outbound event tipleri — wire üzerinde "type" alanında görünür.
const (
	EventPresence = "presence"
	EventTyping   = "typing"
	EventMessage  = "message"
	EventPin      = "pin"
)

// Inbound frame tipleri — client'ın gönderebileceği tek iki frame.
const (
	FrameTyping = "typing"
	FramePing   = "ping"
)

// Event, sunucudan client'a giden tek WebSocket frame tipidir.
//
// Kapalı bir şema: sadece dört event türü vardır ve her tür kendi
// alanını doldurur, gerisi omitempty ile düşer. Client switch(type)
// yapar — bilinmeyen alan görmemeli.
//
//	{ "type": "presence", "count": 3 }
//	{ "type": "typing",   "author": "mina" }
//	{ "type": "message",  "item": { ...mesaj... } }
//	{ "type": "pin",      "url": "/uploads/abc.png" }
type Event struct {
	Type   string          `json:"type"`
	Count  int             `json:"count,omitempty"`
	Author string          `json:"author,omitempty"`
	Item   *models.Message `json:"item,omitempty"`
	URL    string          `json:"url,omitempty"`
}

// PresenceEvent, kanaldaki anlık bağlantı sayısını taşır.
// count: 0 geçerlidir ama omitempty ile düşerdi — presence için
// count alanı her zaman >= 1 yayınlanır (yayın anında en az
// tetikleyen oturum bağlıdır), 0'a düşen kanal zaten boşalmıştır.
func PresenceEvent(count int) Event {
	return Event{Type: EventPresence, Count: count}
}

// TypingEvent, "yazıyor..." göstergesini taşır.
func TypingEvent(author string) Event {
	return Event{Type: EventTyping, Author: author}
}

// MessageEvent, kalıcı hale gelmiş bir mesajı taşır.
// Item her zaman DB'ye yazılmış halidir — ID ve created_at dolu.
func MessageEvent(msg *models.Message) Event {
	return Event{Type: EventMessage, Item: msg}
}

// PinEvent, odaya yeni sabitlenen medya URL'ini taşır.
func PinEvent(url string) Event {
	return Event{Type: EventPin, URL: url}
}

// InboundFrame, client'dan gelen frame'lerin şeması.
// Sadece "ping" ve "typing" tanınır; gerisi sessizce düşürülür.
type InboundFrame struct {
	Type   string `json:"type"`
	Author string `json:"author,omitempty"`
}
