// Package main — uygulama assembly'si.
//
// newApp, tüm katmanları birbirine bağlar (Dependency Injection wire-up):
//
//	config → database → hub → repositories → services → handlers → routes → CORS
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanır.
// main() bu App'i bir http.Server'a takar; testler aynı App'i
// httptest.Server'a takar.
package main

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/rs/cors"

	"github.com/ecehan/atelier/config"
	"github.com/ecehan/atelier/database"
	"github.com/ecehan/atelier/ws"
)

// App, çalışan uygulamanın tuttuğu kaynakların tamamı.
type App struct {
	Handler  http.Handler
	Hub      *ws.Hub
	DB       *database.DB
	Limiters *RateLimiters
}

// newApp, config'den çalışır durumda bir App kurar.
func newApp(cfg *config.Config) (*App, error) {
	// ─── Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// ─── WebSocket Hub ───
	// Hub, kanal registry'sidir ve ws.EventPublisher'ı implement eder —
	// service'ler hub'a interface üzerinden erişir.
	hub := ws.NewHub()

	// ─── Katmanlar ───
	repos := initRepositories(db.Conn)

	svcs, limiters, err := initServices(repos, hub, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	h := initHandlers(svcs, limiters, cfg)

	// RoomService, ws.RoomLookup'ı implicit olarak karşılar (RoomExists).
	wsHandler := ws.NewHandler(hub, svcs.Room)

	mux := http.NewServeMux()
	initRoutes(mux, h, wsHandler, cfg)

	// ─── CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	return &App{
		Handler:  corsHandler.Handler(mux),
		Hub:      hub,
		DB:       db,
		Limiters: limiters,
	}, nil
}

// Close, uygulama kaynaklarını kapatır. Sıra önemli: önce WS
// bağlantıları (client'lar close frame alır), sonra limiter'ın
// arka plan goroutine'i, en son DB.
func (a *App) Close() error {
	a.Hub.Shutdown()
	a.Limiters.Stop()
	return a.DB.Close()
}
