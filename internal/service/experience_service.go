package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

type ExperienceService struct {
	experiences ports.ExperienceRepository
}

func NewExperienceService(experiences ports.ExperienceRepository) *ExperienceService {
	return &ExperienceService{experiences: experiences}
}

func (s *ExperienceService) List(ctx context.Context) ([]domain.Experience, error) {
	return s.experiences.List(ctx)
}

func (s *ExperienceService) Create(ctx context.Context, experience *domain.Experience) (*domain.Experience, error) {
	if strings.TrimSpace(experience.Title) == "" {
		return nil, fmt.Errorf("experience title is required")
	}
	return s.experiences.Create(ctx, experience)
}
