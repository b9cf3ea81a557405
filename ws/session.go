package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	// Bu süre aşılırsa bağlantı kapatılır (ağ sorunu olabilir).
	writeWait = 10 * time.Second

	// pongWait: Client'ın ping frame'i göndermesi için beklenen maksimum süre.
	// Client 20 saniyede bir ping atar — 3 ping kaçırma = 60s.
	// Bu sürede hiç geçerli frame gelmezse bağlantı kopmuş sayılır.
	pongWait = 60 * time.Second

	// maxMessageSize: Client'ın gönderebileceği maksimum frame boyutu (byte).
	// Inbound frame'ler küçüktür (ping/typing) — mesaj içeriği HTTP ile gelir.
	maxMessageSize = 4096

	// sendBufferSize: Her oturumun send channel'ının buffer boyutu.
	// Buffer doluysa (client yavaş) o oturum kanaldan düşürülür —
	// kanalın geri kalanı etkilenmez.
	sendBufferSize = 256
)

// Session, tek bir WebSocket aboneliğini temsil eder.
//
// Her bağlantı için iki goroutine çalışır:
// - ReadPump: client'dan gelen ping/typing frame'lerini okur
// - WritePump: kanaldan gelen event'leri bağlantıya yazar
//
// gorilla/websocket aynı anda tek okuma + tek yazma destekler;
// iki ayrı goroutine sayesinde okuma ve yazma birbirini bloklamaz.
type Session struct {
	id         string
	hub        *Hub
	conn       *websocket.Conn
	channelKey string

	// send, oturuma gidecek marshal edilmiş event'lerin buffer'ı.
	// Kanal broadcast ederken bu channel'a non-blocking yazar.
	send chan []byte

	mu sync.Mutex // conn.WriteMessage çağrılarını korur
}

// ID, oturumun benzersiz kimliğini döner.
func (s *Session) ID() string { return s.id }

// ChannelKey, oturumun abone olduğu kanal anahtarını döner.
func (s *Session) ChannelKey() string { return s.channelKey }

// ReadPump, bağlantıdan gelen frame'leri okur ve işler.
// Bağlantı kapanana kadar döngüde kalır; kapandığında oturumu
// kanaldan düşürür ve kaynakları temizler.
func (s *Session) ReadPump() {
	defer func() {
		s.hub.Unsubscribe(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)

	// Deadline her geçerli frame'de yenilenir — sessiz kalan
	// bağlantı pongWait sonunda ölü sayılır.
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[ws] failed to set read deadline for session %s: %v", s.id, err)
		return
	}

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] unexpected close for session %s: %v", s.id, err)
			}
			return
		}

		// Bozuk JSON veya bilinmeyen tip sessizce düşer —
		// tek bir kötü frame yüzünden bağlantı kapatılmaz.
		var frame InboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		s.handleFrame(frame)
	}
}

// handleFrame, client'dan gelen frame'leri türüne göre işler.
func (s *Session) handleFrame(frame InboundFrame) {
	switch frame.Type {
	case FramePing:
		// Heartbeat — deadline'ı yenile. Ack gönderilmez;
		// client cevap beklemez, sadece bağlantıyı canlı tutar.
		if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[ws] failed to renew read deadline for session %s: %v", s.id, err)
		}

	case FrameTyping:
		// Typing'de de deadline yenilenir — aktif yazan client
		// ping atmayı geciktirse bile düşürülmemeli.
		if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			return
		}
		if frame.Author == "" {
			return
		}
		// Gönderen hariç kanala fan-out. Ayrı goroutine gerekmiyor —
		// notifyTyping sadece kanal lock'u alır, oturum lock'u almaz.
		s.hub.notifyTyping(s, frame.Author)

	default:
		// Bilinmeyen tip — sessizce yoksay.
	}
}

// WritePump, kanaldan gelen event'leri bağlantıya yazar.
func (s *Session) WritePump() {
	defer s.conn.Close()

	for {
		message, ok := <-s.send
		if !ok {
			// Channel kapatıldı — oturum kanaldan çıkarılmış.
			s.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := s.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, bağlantıya mutex koruması altında yazar.
// gorilla/websocket conn'a aynı anda birden fazla yazma yasaktır.
func (s *Session) writeMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}
