package ports

import (
	"context"

	"github.com/wanderhq/wanderlust/internal/domain"
)

type ExperienceRepository interface {
	Create(ctx context.Context, experience *domain.Experience) (*domain.Experience, error)
	ListFirst(ctx context.Context, limit int) ([]domain.Experience, error)
	List(ctx context.Context) ([]domain.Experience, error)
}
