package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO review (listing_id, author_id, comment, rating)
		VALUES (:listing_id, :author_id, :comment, :rating)
		RETURNING id, listing_id, author_id, comment, rating, created_at
	`
	args := map[string]any{
		"listing_id": review.ListingID,
		"author_id":  review.AuthorID,
		"comment":    nullString(review.Comment),
		"rating":     review.Rating,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Review
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	const query = `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, r.created_at,
		       u.username AS author_username
		FROM review r
		JOIN user_account u ON u.id = r.author_id
		WHERE r.id = $1
	`
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	const query = `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, r.created_at,
		       u.username AS author_username
		FROM review r
		JOIN user_account u ON u.id = r.author_id
		WHERE r.listing_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`
	return r.selectReviews(ctx, query, listingID)
}

func (r *ReviewRepository) ListRecent(ctx context.Context, limit int) ([]domain.Review, error) {
	const query = `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, r.created_at,
		       u.username AS author_username,
		       l.name AS listing_name
		FROM review r
		JOIN user_account u ON u.id = r.author_id
		JOIN listing l ON l.id = r.listing_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1
	`
	return r.selectReviews(ctx, query, limit)
}

// Delete removes the review together with its membership in the listing's
// review list. The row carries the listing id, so one statement covers both;
// a mismatch between review id and listing id deletes nothing.
func (r *ReviewRepository) Delete(ctx context.Context, listingID, reviewID uuid.UUID) error {
	const query = `
		DELETE FROM review
		WHERE id = $1 AND listing_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, reviewID, listingID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ReviewRepository) selectReviews(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		if err := rows.StructScan(&review); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
