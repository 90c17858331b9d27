package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

var (
	ErrFavoriteAlreadyExists = errors.New("listing already saved to favorites")
	ErrFavoriteNotFound      = errors.New("favorite not found")
)

type FavoriteService struct {
	favorites ports.FavoriteRepository
	listings  ports.ListingRepository
}

func NewFavoriteService(favorites ports.FavoriteRepository, listings ports.ListingRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, listings: listings}
}

func (s *FavoriteService) Save(ctx context.Context, userID, listingID uuid.UUID) (*domain.Favorite, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if isNotFound(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	favorite, err := s.favorites.Add(ctx, userID, listingID)
	if err != nil {
		// ON CONFLICT DO NOTHING yields no row when already saved.
		switch {
		case isNotFound(err), isUniqueViolation(err):
			return nil, ErrFavoriteAlreadyExists
		default:
			return nil, err
		}
	}
	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	if err := s.favorites.Remove(ctx, userID, listingID); err != nil {
		if isNotFound(err) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteListItem, error) {
	return s.favorites.ListByUser(ctx, userID)
}

func (s *FavoriteService) IsSaved(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	return s.favorites.Exists(ctx, userID, listingID)
}
