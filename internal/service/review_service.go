package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

const (
	minRating = 0
	maxRating = 5
)

type ReviewService struct {
	reviews  ports.ReviewRepository
	listings ports.ListingRepository
}

func NewReviewService(reviews ports.ReviewRepository, listings ports.ListingRepository) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings}
}

// Add stores a review on the listing. An omitted rating stays 0; out-of-range
// ratings are rejected. The review row carries the listing id, so the
// membership and the document are written in one statement.
func (s *ReviewService) Add(ctx context.Context, listingID, authorID uuid.UUID, comment string, rating int) (*domain.Review, error) {
	if rating < minRating || rating > maxRating {
		return nil, ErrInvalidRating
	}
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if isNotFound(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	review := &domain.Review{
		ListingID: listingID,
		AuthorID:  authorID,
		Rating:    rating,
	}
	if trimmed := strings.TrimSpace(comment); trimmed != "" {
		review.Comment = &trimmed
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		if isForeignKeyViolation(err) {
			// Listing deleted between the existence check and the insert.
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return created, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Delete removes the review and its listing membership in one statement. A
// review that does not belong to the listing reports not found.
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	if err := s.reviews.Delete(ctx, listingID, reviewID); err != nil {
		if isNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}
