package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ecehan/atelier/config"
	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/ws"
)

// newTestApp, geçici dizinlerde tam bir uygulama + HTTP server kurar.
func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "test.db")},
		Upload:   config.UploadConfig{Dir: filepath.Join(dir, "uploads"), MaxSize: 1 << 20},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	app, err := newApp(cfg)
	if err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	srv := httptest.NewServer(app.Handler)
	t.Cleanup(func() {
		srv.Close()
		app.Close()
	})

	return app, srv
}

// dialWS, test server'ına WebSocket bağlantısı açar.
func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readWSEvent, bağlantıdan bir event okur (1sn deadline).
func readWSEvent(t *testing.T, conn *websocket.Conn) ws.Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var ev ws.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("failed to read ws event: %v", err)
	}
	return ev
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	_, srv := newTestApp(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// Senaryo: iki client aynı kategoriye bağlanır, presence sayılarını görür,
// REST ile atılan mesaj ikisine de yayınlanır, typing sadece karşı tarafa
// gider, kopan client sonrası presence düşer.
func TestChatScenario(t *testing.T) {
	_, srv := newTestApp(t)

	c1 := dialWS(t, srv, "/ws/chat?category=Music")
	ev := readWSEvent(t, c1)
	if ev.Type != ws.EventPresence || ev.Count != 1 {
		t.Fatalf("expected presence 1, got %+v", ev)
	}

	c2 := dialWS(t, srv, "/ws/chat?category=Music")
	for _, conn := range []*websocket.Conn{c1, c2} {
		ev := readWSEvent(t, conn)
		if ev.Type != ws.EventPresence || ev.Count != 2 {
			t.Fatalf("expected presence 2, got %+v", ev)
		}
	}

	// REST ile mesaj at — her iki WS client'a ulaşmalı.
	resp := postJSON(t, srv, "/chat", map[string]any{
		"author":   "mina",
		"text":     "merhaba",
		"category": "Music",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var posted models.Message
	if err := json.NewDecoder(resp.Body).Decode(&posted); err != nil {
		t.Fatalf("failed to decode posted message: %v", err)
	}

	for _, conn := range []*websocket.Conn{c1, c2} {
		ev := readWSEvent(t, conn)
		if ev.Type != ws.EventMessage {
			t.Fatalf("expected message event, got %+v", ev)
		}
		if ev.Item == nil || ev.Item.ID != posted.ID || ev.Item.Author != "mina" {
			t.Fatalf("broadcast item mismatch: %+v vs %+v", ev.Item, posted)
		}
	}

	// Typing: c1 gönderir, sadece c2 görür.
	if err := c1.WriteJSON(map[string]string{"type": "typing", "author": "mina"}); err != nil {
		t.Fatalf("failed to send typing frame: %v", err)
	}
	ev = readWSEvent(t, c2)
	if ev.Type != ws.EventTyping || ev.Author != "mina" {
		t.Fatalf("expected typing event, got %+v", ev)
	}

	// Geçmiş REST'ten okunur — en yeni ilk sırada.
	histResp, err := http.Get(srv.URL + "/chat?category=Music")
	if err != nil {
		t.Fatalf("GET /chat failed: %v", err)
	}
	defer histResp.Body.Close()
	var hist struct {
		Items []models.Message `json:"items"`
	}
	if err := json.NewDecoder(histResp.Body).Decode(&hist); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(hist.Items) != 1 || hist.Items[0].ID != posted.ID {
		t.Fatalf("unexpected history: %+v", hist.Items)
	}

	// c2 kopar — c1 presence düşüşünü görür.
	c2.Close()
	ev = readWSEvent(t, c1)
	if ev.Type != ws.EventPresence || ev.Count != 1 {
		t.Fatalf("expected presence 1 after disconnect, got %+v", ev)
	}
}

func TestRoomScenario(t *testing.T) {
	_, srv := newTestApp(t)

	resp := postJSON(t, srv, "/rooms", map[string]string{
		"title":      "Figure Drawing",
		"discipline": "Painting",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var room models.Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		t.Fatalf("failed to decode room: %v", err)
	}

	conn := dialWS(t, srv, "/ws/rooms/"+room.ID)
	ev := readWSEvent(t, conn)
	if ev.Type != ws.EventPresence || ev.Count != 1 {
		t.Fatalf("expected presence 1, got %+v", ev)
	}

	// Form body ile pin — frontend'in gönderdiği format.
	form := url.Values{"url": {"/uploads/sketch.png"}}
	pinResp, err := http.Post(srv.URL+"/rooms/"+room.ID+"/pin",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST pin failed: %v", err)
	}
	defer pinResp.Body.Close()
	if pinResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", pinResp.StatusCode)
	}

	ev = readWSEvent(t, conn)
	if ev.Type != ws.EventPin || ev.URL != "/uploads/sketch.png" {
		t.Fatalf("expected pin event, got %+v", ev)
	}

	// Odaya REST ile mesaj — WS abonesine ulaşır.
	msgResp := postJSON(t, srv, "/rooms/"+room.ID+"/messages", map[string]string{
		"author": "arda",
		"text":   "started",
	})
	if msgResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", msgResp.StatusCode)
	}

	ev = readWSEvent(t, conn)
	if ev.Type != ws.EventMessage || ev.Item == nil || ev.Item.RoomID != room.ID {
		t.Fatalf("expected room message event, got %+v", ev)
	}

	// Oda kapatılır — mesaj reddedilir, geçmiş ve pinler kalır.
	closeResp := postJSON(t, srv, "/rooms/"+room.ID+"/close", nil)
	if closeResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", closeResp.StatusCode)
	}

	lateResp := postJSON(t, srv, "/rooms/"+room.ID+"/messages", map[string]string{"text": "late"})
	if lateResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for closed room, got %d", lateResp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/rooms/" + room.ID)
	if err != nil {
		t.Fatalf("GET room failed: %v", err)
	}
	defer getResp.Body.Close()
	var got models.Room
	if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode room: %v", err)
	}
	if got.Status != models.RoomStatusClosed || len(got.PinnedMedia) != 1 {
		t.Fatalf("unexpected closed room state: %+v", got)
	}
}

func TestRoomWebSocketUnknownRoomRejected(t *testing.T) {
	_, srv := newTestApp(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/rooms/deadbeef"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected handshake failure for unknown room")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("expected 404 before upgrade, got %d", status)
	}
}

func TestSeedEndpointIsIdempotent(t *testing.T) {
	_, srv := newTestApp(t)

	first := postJSON(t, srv, "/api/seed", nil)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.StatusCode)
	}
	var seeded struct {
		Seeded int `json:"seeded"`
	}
	if err := json.NewDecoder(first.Body).Decode(&seeded); err != nil {
		t.Fatalf("failed to decode seed response: %v", err)
	}
	if seeded.Seeded == 0 {
		t.Fatal("expected first seed to insert artworks")
	}

	second := postJSON(t, srv, "/api/seed", nil)
	if err := json.NewDecoder(second.Body).Decode(&seeded); err != nil {
		t.Fatalf("failed to decode second seed response: %v", err)
	}
	if seeded.Seeded != 0 {
		t.Fatalf("expected second seed to be a no-op, inserted %d", seeded.Seeded)
	}

	listResp, err := http.Get(srv.URL + "/api/artworks")
	if err != nil {
		t.Fatalf("GET /api/artworks failed: %v", err)
	}
	defer listResp.Body.Close()
	var list struct {
		Items []models.Artwork `json:"items"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode artworks: %v", err)
	}
	if len(list.Items) == 0 {
		t.Fatal("expected seeded artworks in listing")
	}
}

func TestBookingAndDirectoryEndpoints(t *testing.T) {
	_, srv := newTestApp(t)

	resp := postJSON(t, srv, "/practices", map[string]any{
		"title": "Community Mural", "city": "Istanbul", "category": "mural",
		"tags": []string{"paint"}, "source_url": "https://example.com/mural",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for practice, got %d", resp.StatusCode)
	}
	resp = postJSON(t, srv, "/practices", map[string]any{
		"title": "Open Kiln Night", "city": "Istanbul", "category": "ceramics",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for practice, got %d", resp.StatusCode)
	}

	listResp, err := http.Get(srv.URL + "/practices?city=Istanbul")
	if err != nil {
		t.Fatalf("GET /practices failed: %v", err)
	}
	defer listResp.Body.Close()
	var practices struct {
		Items []models.Practice `json:"items"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&practices); err != nil {
		t.Fatalf("failed to decode practices: %v", err)
	}
	if len(practices.Items) != 2 {
		t.Fatalf("expected 2 practices for Istanbul, got %d", len(practices.Items))
	}

	catResp, err := http.Get(srv.URL + "/practices?city=Istanbul&category=mural")
	if err != nil {
		t.Fatalf("GET /practices failed: %v", err)
	}
	defer catResp.Body.Close()
	if err := json.NewDecoder(catResp.Body).Decode(&practices); err != nil {
		t.Fatalf("failed to decode practices: %v", err)
	}
	if len(practices.Items) != 1 {
		t.Fatalf("expected 1 mural practice for Istanbul, got %d", len(practices.Items))
	}
	if practices.Items[0].Title != "Community Mural" {
		t.Fatalf("expected mural practice, got %q", practices.Items[0].Title)
	}
	if practices.Items[0].SourceURL == nil || *practices.Items[0].SourceURL != "https://example.com/mural" {
		t.Fatalf("expected source_url to round-trip, got %v", practices.Items[0].SourceURL)
	}

	otherResp, err := http.Get(srv.URL + "/practices?city=Berlin")
	if err != nil {
		t.Fatalf("GET /practices failed: %v", err)
	}
	defer otherResp.Body.Close()
	if err := json.NewDecoder(otherResp.Body).Decode(&practices); err != nil {
		t.Fatalf("failed to decode practices: %v", err)
	}
	if len(practices.Items) != 0 {
		t.Fatalf("expected 0 practices for Berlin, got %d", len(practices.Items))
	}

	perfResp := postJSON(t, srv, "/performances", map[string]any{
		"title": "Night Set", "artist": "Duo X", "discipline": "Music", "city": "Berlin",
	})
	if perfResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for performance, got %d", perfResp.StatusCode)
	}

	bookResp := postJSON(t, srv, "/bookings", map[string]string{
		"name": "Mina", "email": "mina@example.com", "topic": "Ceramics",
	})
	if bookResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for booking, got %d", bookResp.StatusCode)
	}

	badBookResp := postJSON(t, srv, "/bookings", map[string]string{"name": "NoMail"})
	if badBookResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for booking without email, got %d", badBookResp.StatusCode)
	}

	bookListResp, err := http.Get(srv.URL + "/bookings")
	if err != nil {
		t.Fatalf("GET /bookings failed: %v", err)
	}
	defer bookListResp.Body.Close()
	var bookings struct {
		Items []models.Booking `json:"items"`
	}
	if err := json.NewDecoder(bookListResp.Body).Decode(&bookings); err != nil {
		t.Fatalf("failed to decode bookings: %v", err)
	}
	if len(bookings.Items) != 1 || bookings.Items[0].Name != "Mina" {
		t.Fatalf("expected only Mina's booking, got %+v", bookings.Items)
	}
}

func TestModerationEndpoints(t *testing.T) {
	_, srv := newTestApp(t)

	resp := postJSON(t, srv, "/chat", map[string]string{"author": "troll", "text": "spam"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var msg models.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}

	flagResp := postJSON(t, srv, fmt.Sprintf("/chat/%d/flag", msg.ID), nil)
	if flagResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for flag, got %d", flagResp.StatusCode)
	}

	req, err := http.NewRequest(http.MethodDelete, srv.URL+fmt.Sprintf("/chat/%d", msg.ID), nil)
	if err != nil {
		t.Fatalf("failed to build delete request: %v", err)
	}
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", delResp.StatusCode)
	}

	// İkinci silme 404.
	delResp2, err := http.DefaultClient.Do(req.Clone(req.Context()))
	if err != nil {
		t.Fatalf("second DELETE failed: %v", err)
	}
	defer delResp2.Body.Close()
	if delResp2.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", delResp2.StatusCode)
	}
}
