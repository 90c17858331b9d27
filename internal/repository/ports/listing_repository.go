package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.ListingFields) (*domain.Listing, error)
	SetImage(ctx context.Context, id uuid.UUID, url, key string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID, relations ...domain.ListingRelation) (*domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
	ListFirst(ctx context.Context, limit int) ([]domain.Listing, error)
	SampleRandom(ctx context.Context, limit int) ([]domain.Listing, error)
}
