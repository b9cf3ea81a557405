package services

import (
	"context"
	"fmt"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/repository"
)

// PracticeService, şehir girişimleri iş mantığı interface'i.
type PracticeService interface {
	List(ctx context.Context, city, category string) ([]models.Practice, error)
	Create(ctx context.Context, req *models.CreatePracticeRequest) (*models.Practice, error)
}

type practiceService struct {
	practiceRepo repository.PracticeRepository
}

// NewPracticeService, constructor.
func NewPracticeService(practiceRepo repository.PracticeRepository) PracticeService {
	return &practiceService{practiceRepo: practiceRepo}
}

func (s *practiceService) List(ctx context.Context, city, category string) ([]models.Practice, error) {
	practices, err := s.practiceRepo.List(ctx, city, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list practices: %w", err)
	}
	return practices, nil
}

func (s *practiceService) Create(ctx context.Context, req *models.CreatePracticeRequest) (*models.Practice, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	practice := &models.Practice{
		Title:       req.Title,
		City:        req.City,
		Tags:        req.Tags,
		ImpactScore: req.ImpactScore,
	}
	if practice.Tags == nil {
		practice.Tags = []string{}
	}
	if req.Category != "" {
		practice.Category = &req.Category
	}
	if req.Description != "" {
		practice.Description = &req.Description
	}
	if req.SourceURL != "" {
		practice.SourceURL = &req.SourceURL
	}

	if err := s.practiceRepo.Create(ctx, practice); err != nil {
		return nil, fmt.Errorf("failed to create practice: %w", err)
	}

	return practice, nil
}
