package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Review, error)
	// Delete removes the review document together with its membership in the
	// listing's review list; both go in one statement.
	Delete(ctx context.Context, listingID, reviewID uuid.UUID) error
}
