package models

import "strings"

// Kanal anahtarı (channel key) namespace'leri.
//
// Kategori sohbeti ve oda sohbeti aynı broadcast/registry mekanizmasını ve
// aynı messages tablosunu paylaşır; iki ad uzayı prefix ile ayrılır.
// Böylece bir oda id'si ile aynı isimdeki kategori asla aynı kanalı veya
// aynı mesaj partition'ını paylaşamaz. Bu anahtarlar tamamen internaldir —
// HTTP/WS yüzeyleri hiçbir zaman görmez.
const (
	chatKeyPrefix = "chat:"
	roomKeyPrefix = "room:"

	// DefaultCategory, category parametresi verilmediğinde kullanılan kanal.
	DefaultCategory = "General"
)

// ChatKey, kategori adından internal kanal anahtarı üretir.
// Boş kategori DefaultCategory'ye düşer.
func ChatKey(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return chatKeyPrefix + category
}

// RoomKey, oda id'sinden internal kanal anahtarı üretir.
func RoomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

// SplitKey, internal kanal anahtarını (category, roomID) çiftine ayırır.
// Anahtar hangi ad uzayındaysa o alan dolu, diğeri boş döner.
func SplitKey(key string) (category, roomID string) {
	switch {
	case strings.HasPrefix(key, chatKeyPrefix):
		return strings.TrimPrefix(key, chatKeyPrefix), ""
	case strings.HasPrefix(key, roomKeyPrefix):
		return "", strings.TrimPrefix(key, roomKeyPrefix)
	default:
		return "", ""
	}
}
