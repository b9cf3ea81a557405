package ws

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ecehan/atelier/models"
)

// RoomLookup, oda WebSocket handler'ının oda varlık kontrolü için
// kullandığı interface.
//
// Neden services.RoomService yerine kendi interface'imizi tanımlıyoruz?
// Circular dependency'yi önlemek için:
// - services paketi ws.EventPublisher'ı kullanıyor (broadcast için)
// - ws paketi services'i kullansaydı → ws → services → ws döngüsü oluşurdu
//
// Interface Segregation: handler'ın RoomService'in tamamına ihtiyacı yok,
// tek soru "bu oda var mı?". main.go'da roomService bu interface'i
// implicit olarak karşılar.
type RoomLookup interface {
	RoomExists(ctx context.Context, id string) (bool, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: CORS policy'si HTTP katmanında rs/cors ile uygulanır;
	// WS upgrade'de origin kısıtlamıyoruz.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub   *Hub
	rooms RoomLookup
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, rooms RoomLookup) *Handler {
	return &Handler{hub: hub, rooms: rooms}
}

// HandleChat, kategori sohbeti için WS bağlantısı açar.
//
//	GET /ws/chat?category=Music
//
// category boşsa varsayılan kategori kullanılır. Kategoriler dinamiktir —
// varlık kontrolü yoktur, ilk abone kanalı yaratır.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.DefaultCategory
	}

	h.serve(w, r, models.ChatKey(category))
}

// HandleRoom, oda sohbeti için WS bağlantısı açar.
//
//	GET /ws/rooms/{id}
//
// Odalar kategorilerin aksine kayıtlıdır: olmayan odaya bağlantı
// upgrade edilmeden 404 ile reddedilir.
func (h *Handler) HandleRoom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	exists, err := h.rooms.RoomExists(r.Context(), id)
	if err != nil {
		log.Printf("[ws] room lookup failed for %s: %v", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	h.serve(w, r, models.RoomKey(id))
}

// serve, upgrade + oturum oluşturma + pump'ları başlatma ortak akışı.
//
// Flow:
// 1. HTTP → WebSocket upgrade
// 2. Session oluştur, Hub'a abone et (presence burada yayınlanır)
// 3. ReadPump ve WritePump goroutine'lerini başlat
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, channelKey string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade başarısızsa gorilla yanıtı zaten yazmıştır.
		log.Printf("[ws] upgrade failed for %s: %v", channelKey, err)
		return
	}

	session := &Session{
		id:         uuid.NewString(),
		hub:        h.hub,
		conn:       conn,
		channelKey: channelKey,
		send:       make(chan []byte, sendBufferSize),
	}

	h.hub.Subscribe(session)

	go session.WritePump()
	go session.ReadPump()
}
