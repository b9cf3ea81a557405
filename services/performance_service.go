package services

import (
	"context"
	"fmt"

	"github.com/ecehan/atelier/models"
	"github.com/ecehan/atelier/pkg"
	"github.com/ecehan/atelier/repository"
)

// PerformanceService, sahne performansları iş mantığı interface'i.
type PerformanceService interface {
	List(ctx context.Context, city, discipline string) ([]models.Performance, error)
	Create(ctx context.Context, req *models.CreatePerformanceRequest) (*models.Performance, error)
}

type performanceService struct {
	performanceRepo repository.PerformanceRepository
}

// NewPerformanceService, constructor.
func NewPerformanceService(performanceRepo repository.PerformanceRepository) PerformanceService {
	return &performanceService{performanceRepo: performanceRepo}
}

func (s *performanceService) List(ctx context.Context, city, discipline string) ([]models.Performance, error) {
	performances, err := s.performanceRepo.List(ctx, city, discipline)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances: %w", err)
	}
	return performances, nil
}

func (s *performanceService) Create(ctx context.Context, req *models.CreatePerformanceRequest) (*models.Performance, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	performance := &models.Performance{
		Title:         req.Title,
		Artist:        req.Artist,
		RecordingURLs: req.RecordingURLs,
		Tags:          req.Tags,
	}
	if performance.RecordingURLs == nil {
		performance.RecordingURLs = []string{}
	}
	if performance.Tags == nil {
		performance.Tags = []string{}
	}
	if req.Discipline != "" {
		performance.Discipline = &req.Discipline
	}
	if req.City != "" {
		performance.City = &req.City
	}
	if req.ScheduledAt != "" {
		performance.ScheduledAt = &req.ScheduledAt
	}
	if req.LiveURL != "" {
		performance.LiveURL = &req.LiveURL
	}
	if req.Description != "" {
		performance.Description = &req.Description
	}

	if err := s.performanceRepo.Create(ctx, performance); err != nil {
		return nil, fmt.Errorf("failed to create performance: %w", err)
	}

	return performance, nil
}
