package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteListItem, error)
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
}
