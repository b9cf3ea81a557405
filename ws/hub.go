package ws

import (
	"log"
	"sync"

	"github.com/ecehan/atelier/pkg/metrics"
)

// EventPublisher, service katmanının WebSocket event'leri yayınlamak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Test'te mock publisher takılabilir ve
// Hub implementasyonu değişse bile service kodu etkilenmez.
type EventPublisher interface {
	Broadcast(channelKey string, event Event)
	Presence(channelKey string) int
}

// Hub, kanal registry'sidir: kanal anahtarı → Channel.
//
// Kanallar lazy oluşturulur (ilk abone geldiğinde) ve son abone
// ayrıldığında silinir — registry'de sadece canlı kanallar yaşar.
// Kalıcı hiçbir şey tutmaz; mesaj geçmişi DB'dedir.
//
// Lock sırası: Hub.mu → Channel.mu. Subscribe/Unsubscribe registry
// lock'unu tutarken attach/detach çağırır; böylece "boş kanala abone
// olurken kanal siliniyor" yarışı olamaz.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]*Channel
}

// NewHub, boş bir registry oluşturur.
func NewHub() *Hub {
	return &Hub{
		channels: make(map[string]*Channel),
	}
}

// Subscribe, oturumu kanalına ekler; kanal yoksa oluşturur.
// Oturumun channelKey'i handler tarafından set edilmiştir.
func (h *Hub) Subscribe(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[s.channelKey]
	if !ok {
		ch = newChannel(s.channelKey, h)
		h.channels[s.channelKey] = ch
		metrics.ChannelsActive.Inc()
		log.Printf("[ws] channel created: %s", s.channelKey)
	}

	ch.attach(s)
	metrics.SessionsActive.Inc()
}

// Unsubscribe, oturumu kanalından çıkarır. Idempotent — ReadPump'ın
// defer'i ve yavaş consumer düşürme aynı oturum için yarışabilir,
// ikincisi no-op olur. Boşalan kanal registry'den silinir.
func (h *Hub) Unsubscribe(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[s.channelKey]
	if !ok {
		return
	}

	removed, empty := ch.detach(s)
	if removed {
		metrics.SessionsActive.Dec()
	}
	if empty {
		delete(h.channels, s.channelKey)
		metrics.ChannelsActive.Dec()
		log.Printf("[ws] channel removed: %s", s.channelKey)
	}
}

// Broadcast, event'i verilen kanalın tüm abonelerine gönderir.
// Kanal yoksa (kimse bağlı değilse) sessizce no-op — REST tarafı
// abone olup olmadığına bakmadan yayınlar.
func (h *Hub) Broadcast(channelKey string, event Event) {
	h.mu.RLock()
	ch := h.channels[channelKey]
	h.mu.RUnlock()

	if ch == nil {
		return
	}
	ch.broadcast(event)
}

// Presence, kanaldaki anlık abone sayısını döner. Kanal yoksa 0.
func (h *Hub) Presence(channelKey string) int {
	h.mu.RLock()
	ch := h.channels[channelKey]
	h.mu.RUnlock()

	if ch == nil {
		return 0
	}
	return ch.count()
}

// notifyTyping, typing event'ini gönderen hariç kanala dağıtır.
// Session.ReadPump'tan çağrılır.
func (h *Hub) notifyTyping(sender *Session, author string) {
	h.mu.RLock()
	ch := h.channels[sender.channelKey]
	h.mu.RUnlock()

	if ch == nil {
		return
	}
	ch.broadcastExcept(sender, TypingEvent(author))
}

// Shutdown, tüm oturumların send channel'larını kapatır ve registry'yi
// boşaltır. Graceful shutdown'da HTTP server kapanmadan önce çağrılır —
// WritePump'lar close frame yazıp sonlanır.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, ch := range h.channels {
		ch.mu.Lock()
		for s := range ch.sessions {
			close(s.send)
			metrics.SessionsActive.Dec()
		}
		ch.sessions = make(map[*Session]bool)
		ch.mu.Unlock()

		delete(h.channels, key)
		metrics.ChannelsActive.Dec()
	}

	log.Printf("[ws] hub shut down")
}
