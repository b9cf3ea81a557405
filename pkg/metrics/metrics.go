// Package metrics, Prometheus collector'larını merkezi olarak tanımlar.
//
// promauto ile tanımlanan collector'lar default registry'ye otomatik kayıt
// olur; /metrics endpoint'i promhttp.Handler() ile expose edilir (main.go).
//
// Neden ayrı paket?
// ws ve services katmanları counter artırır ama birbirine bağımlı değildir.
// metrics leaf dependency'dir — hiçbir proje içi paketi import etmez.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsActive, o an bağlı WebSocket session sayısı (tüm kanallar toplamı).
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "atelier_ws_sessions_active",
		Help: "Number of currently attached WebSocket sessions.",
	})

	// ChannelsActive, o an yaşayan broadcast kanalı sayısı.
	ChannelsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "atelier_ws_channels_active",
		Help: "Number of live broadcast channels in the registry.",
	})

	// MessagesStored, store'a kabul edilen toplam mesaj sayısı.
	MessagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atelier_messages_stored_total",
		Help: "Total number of chat messages appended to the store.",
	})

	// EventsBroadcast, kanallara gönderilen toplam event sayısı (fan-out öncesi).
	EventsBroadcast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_ws_events_broadcast_total",
		Help: "Total number of events broadcast to channels, by event type.",
	}, []string{"type"})

	// SlowConsumersDropped, send buffer'ı dolduğu için düşürülen session sayısı.
	SlowConsumersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atelier_ws_slow_consumers_dropped_total",
		Help: "Total number of sessions force-detached because their send buffer overflowed.",
	})
)
