package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/ecehan/atelier/pkg/metrics"
)

// Channel, tek bir yayın alanını temsil eder — bir sohbet kategorisi
// veya bir oda. Abone oturumların set'ini tutar ve event'leri hepsine
// dağıtır.
//
// Lock sırası her zaman Hub → Channel yönündedir. Channel asla
// Hub lock'unu almaz; Hub'a dönmesi gereken işler (yavaş consumer'ı
// düşürmek gibi) goroutine ile ertelenir.
type Channel struct {
	key string
	hub *Hub

	mu       sync.RWMutex
	sessions map[*Session]bool
}

func newChannel(key string, hub *Hub) *Channel {
	return &Channel{
		key:      key,
		hub:      hub,
		sessions: make(map[*Session]bool),
	}
}

// attach, oturumu kanala ekler ve yeni presence sayısını herkese
// (yeni gelen dahil) yayınlar. Yeni gelen ilk frame olarak kendi
// dahil olduğu sayıyı görür.
func (c *Channel) attach(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions[s] = true
	log.Printf("[ws] session %s attached to %s (count=%d)", s.id, c.key, len(c.sessions))

	c.broadcastLocked(PresenceEvent(len(c.sessions)))
}

// detach, oturumu kanaldan çıkarır ve send channel'ını kapatır.
// Idempotent: oturum zaten yoksa hiçbir şey yapmaz (removed=false).
// empty=true ise kanalda kimse kalmamıştır — Hub kanalı siler.
func (c *Channel) detach(s *Session) (removed, empty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[s]; !ok {
		return false, len(c.sessions) == 0
	}

	delete(c.sessions, s)
	// close, WritePump'ı close frame yazıp sonlanmaya yönlendirir.
	// detach map kontrolü ile idempotent olduğu için channel
	// kesinlikle bir kez kapanır.
	close(s.send)

	log.Printf("[ws] session %s detached from %s (count=%d)", s.id, c.key, len(c.sessions))

	if len(c.sessions) > 0 {
		c.broadcastLocked(PresenceEvent(len(c.sessions)))
	}

	return true, len(c.sessions) == 0
}

// broadcast, event'i kanaldaki tüm oturumlara gönderir.
func (c *Channel) broadcast(event Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.broadcastLocked(event)
}

// broadcastExcept, event'i gönderen hariç tüm oturumlara iletir
// (typing fan-out bunu kullanır).
func (c *Channel) broadcastExcept(exclude *Session, event Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal %s event: %v", event.Type, err)
		return
	}
	metrics.EventsBroadcast.WithLabelValues(event.Type).Inc()

	for s := range c.sessions {
		if s == exclude {
			continue
		}
		c.deliver(s, data)
	}
}

// broadcastLocked, lock zaten tutulurken çağrılır.
// Event bir kez marshal edilir, tüm oturumlara aynı []byte gider.
func (c *Channel) broadcastLocked(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal %s event: %v", event.Type, err)
		return
	}
	metrics.EventsBroadcast.WithLabelValues(event.Type).Inc()

	for s := range c.sessions {
		c.deliver(s, data)
	}
}

// deliver, tek bir oturuma non-blocking gönderim yapar.
// Buffer doluysa o oturum yavaş demektir — kanalın gerisini
// bekletmek yerine sadece onu düşürürüz. Unsubscribe goroutine ile
// çağrılır çünkü Hub lock'u ister; burada Channel lock'u tutuyoruz.
func (c *Channel) deliver(s *Session, data []byte) {
	select {
	case s.send <- data:
	default:
		log.Printf("[ws] send buffer full for session %s on %s, dropping session", s.id, c.key)
		metrics.SlowConsumersDropped.Inc()
		go c.hub.Unsubscribe(s)
	}
}

// count, anlık abone sayısını döner.
func (c *Channel) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}
