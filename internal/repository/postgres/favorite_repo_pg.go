package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, listingID uuid.UUID) (*domain.Favorite, error) {
	const query = `
		INSERT INTO favorite_list (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
		RETURNING id, user_id, listing_id, created_at
	`
	var favorite domain.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, userID, listingID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	const query = `
		DELETE FROM favorite_list
		WHERE user_id = $1 AND listing_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, listingID)
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

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteListItem, error) {
	const query = `
		SELECT
			f.id,
			f.user_id,
			f.listing_id,
			f.created_at,
			l.name AS listing_name,
			l.location,
			l.country,
			l.price,
			l.image_url
		FROM favorite_list f
		JOIN listing l ON l.id = f.listing_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id DESC
	`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.FavoriteListItem, 0)
	for rows.Next() {
		var item domain.FavoriteListItem
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM favorite_list
			WHERE user_id = $1 AND listing_id = $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, listingID); err != nil {
		return false, err
	}
	return exists, nil
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
