package services

import (
	"context"
	"fmt"
	"log"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/repository"
)

// ArtworkService, galeri iş mantığı interface'i.
type ArtworkService interface {
	List(ctx context.Context) ([]models.Artwork, error)
	Create(ctx context.Context, req *models.CreateArtworkRequest) (*models.Artwork, error)
	Seed(ctx context.Context) (int, error)
}

type artworkService struct {
	artworkRepo repository.ArtworkRepository
}

// NewArtworkService, constructor.
func NewArtworkService(artworkRepo repository.ArtworkRepository) ArtworkService {
	return &artworkService{artworkRepo: artworkRepo}
}

func (s *artworkService) List(ctx context.Context) ([]models.Artwork, error) {
	artworks, err := s.artworkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	return artworks, nil
}

func (s *artworkService) Create(ctx context.Context, req *models.CreateArtworkRequest) (*models.Artwork, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	artwork := &models.Artwork{Title: req.Title}
	if req.Artist != "" {
		artwork.Artist = &req.Artist
	}
	if req.Category != "" {
		artwork.Category = &req.Category
	}
	if req.ImageURL != "" {
		artwork.ImageURL = &req.ImageURL
	}
	if req.Description != "" {
		artwork.Description = &req.Description
	}

	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	return artwork, nil
}

// seedArtworks, boş galeriyi doldurmak için kullanılan örnek eserler.
var seedArtworks = []models.CreateArtworkRequest{
	{Title: "Sunset Over the Bosphorus", Artist: "Elif Demir", Category: "Painting", Description: "Oil on canvas, golden hour study."},
	{Title: "Fragments", Artist: "Mara Quinn", Category: "Sculpture", Description: "Reclaimed steel and glass."},
	{Title: "Quiet Streets", Artist: "Jonas Berg", Category: "Photography", Description: "Black and white series, winter mornings."},
	{Title: "Bloom Cycle", Artist: "Aiko Tanaka", Category: "Digital", Description: "Generative piece, one frame per day of spring."},
	{Title: "Study in Red", Artist: "Elif Demir", Category: "Painting", Description: "Acrylic study for a larger series."},
	{Title: "Echo Chamber", Artist: "Sam Ortiz", Category: "Installation", Description: "Sound installation with found tape loops."},
}

// Seed, galeri boşsa örnek eserleri ekler. Galeri doluysa no-op —
// tekrar çağırmak güvenlidir. Eklenen kayıt sayısını döner.
func (s *artworkService) Seed(ctx context.Context) (int, error) {
	count, err := s.artworkRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count artworks: %w", err)
	}
	if count > 0 {
		log.Printf("[artwork] seed skipped, gallery already has %d artworks", count)
		return 0, nil
	}

	seeded := 0
	for i := range seedArtworks {
		req := seedArtworks[i]
		if _, err := s.Create(ctx, &req); err != nil {
			return seeded, fmt.Errorf("failed to seed artwork %q: %w", req.Title, err)
		}
		seeded++
	}

	log.Printf("[artwork] seeded %d artworks", seeded)
	return seeded, nil
}
