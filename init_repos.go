// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/ecehan/atelier/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
// Tek struct, fonksiyon imzalarını temiz tutar ve yeni repository
// eklendiğinde sadece burası + initRepositories güncellenir.
type Repositories struct {
	Message     repository.MessageRepository
	Room        repository.RoomRepository
	Artwork     repository.ArtworkRepository
	Practice    repository.PracticeRepository
	Performance repository.PerformanceRepository
	Booking     repository.BookingRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// Go'nun sql.DB'si thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Message:     repository.NewSQLiteMessageRepo(conn),
		Room:        repository.NewSQLiteRoomRepo(conn),
		Artwork:     repository.NewSQLiteArtworkRepo(conn),
		Practice:    repository.NewSQLitePracticeRepo(conn),
		Performance: repository.NewSQLitePerformanceRepo(conn),
		Booking:     repository.NewSQLiteBookingRepo(conn),
	}
}
