package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepo(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `
	id, name, description, address, country, location, price, type,
	guests, bedrooms, bathrooms, checkin, checkout, amenities, rules,
	image_url, image_key, geometry, owner_id, created_at, updated_at
`

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	const query = `
		INSERT INTO listing (
			name, description, address, country, location, price, type,
			guests, bedrooms, bathrooms, checkin, checkout, amenities, rules,
			image_url, image_key, geometry, owner_id
		) VALUES (
			:name, :description, :address, :country, :location, :price, :type,
			:guests, :bedrooms, :bathrooms, :checkin, :checkout, :amenities, :rules,
			:image_url, :image_key, :geometry, :owner_id
		)
		RETURNING ` + listingColumns

	args := map[string]any{
		"name":        listing.Name,
		"description": nullString(listing.Description),
		"address":     nullString(listing.Address),
		"country":     nullString(listing.Country),
		"location":    nullString(listing.Location),
		"price":       nullFloat(listing.Price),
		"type":        nullString(listing.Type),
		"guests":      nullInt(listing.Guests),
		"bedrooms":    nullInt(listing.Bedrooms),
		"bathrooms":   nullInt(listing.Bathrooms),
		"checkin":     nullString(listing.Checkin),
		"checkout":    nullString(listing.Checkout),
		"amenities":   listing.Amenities,
		"rules":       nullString(listing.Rules),
		"image_url":   nullString(listing.ImageURL),
		"image_key":   nullString(listing.ImageKey),
		"geometry":    listing.Geometry,
		"owner_id":    listing.OwnerID,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Listing
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ListingRepository) Update(ctx context.Context, id uuid.UUID, fields domain.ListingFields) (*domain.Listing, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if fields.Name != nil {
		set("name", *fields.Name)
	}
	if fields.Description != nil {
		set("description", nullString(fields.Description))
	}
	if fields.Address != nil {
		set("address", nullString(fields.Address))
	}
	if fields.Country != nil {
		set("country", nullString(fields.Country))
	}
	if fields.Location != nil {
		set("location", nullString(fields.Location))
	}
	if fields.Price != nil {
		set("price", nullFloat(fields.Price))
	}
	if fields.Type != nil {
		set("type", nullString(fields.Type))
	}
	if fields.Guests != nil {
		set("guests", nullInt(fields.Guests))
	}
	if fields.Bedrooms != nil {
		set("bedrooms", nullInt(fields.Bedrooms))
	}
	if fields.Bathrooms != nil {
		set("bathrooms", nullInt(fields.Bathrooms))
	}
	if fields.Checkin != nil {
		set("checkin", nullString(fields.Checkin))
	}
	if fields.Checkout != nil {
		set("checkout", nullString(fields.Checkout))
	}
	if fields.Amenities != nil {
		set("amenities", stringArray(fields.Amenities))
	}
	if fields.Rules != nil {
		set("rules", nullString(fields.Rules))
	}

	query := fmt.Sprintf(`
		UPDATE listing
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), idx, listingColumns)
	args = append(args, id)

	var listing domain.Listing
	if err := r.db.GetContext(ctx, &listing, query, args...); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepository) SetImage(ctx context.Context, id uuid.UUID, url, key string) error {
	const query = `
		UPDATE listing
		SET image_url = $2, image_key = $3, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, url, key)
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

func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listing WHERE id = $1`, id)
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

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID, relations ...domain.ListingRelation) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listing WHERE id = $1`

	var listing domain.Listing
	if err := r.db.GetContext(ctx, &listing, query, id); err != nil {
		return nil, err
	}

	for _, relation := range relations {
		switch relation {
		case domain.ListingRelationOwner:
			var owner domain.User
			const ownerQuery = `
				SELECT id, username, email, password_hash, password_salt, created_at, updated_at
				FROM user_account
				WHERE id = $1
			`
			if err := r.db.GetContext(ctx, &owner, ownerQuery, listing.OwnerID); err != nil {
				if err != sql.ErrNoRows {
					return nil, err
				}
			} else {
				listing.Owner = &owner
			}
		case domain.ListingRelationReviews:
			reviews, err := r.reviewsForListing(ctx, listing.ID)
			if err != nil {
				return nil, err
			}
			listing.Reviews = reviews
		}
	}
	return &listing, nil
}

func (r *ListingRepository) List(ctx context.Context) ([]domain.Listing, error) {
	const query = `
		SELECT l.id, l.name, l.description, l.address, l.country, l.location,
		       l.price, l.type, l.guests, l.bedrooms, l.bathrooms, l.checkin,
		       l.checkout, l.amenities, l.rules, l.image_url, l.image_key,
		       l.geometry, l.owner_id, l.created_at, l.updated_at,
		       AVG(r.rating) AS avg_rating
		FROM listing l
		LEFT JOIN review r ON r.listing_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at DESC, l.id DESC
	`
	return r.selectListings(ctx, query)
}

func (r *ListingRepository) ListFirst(ctx context.Context, limit int) ([]domain.Listing, error) {
	const query = `
		SELECT l.id, l.name, l.description, l.address, l.country, l.location,
		       l.price, l.type, l.guests, l.bedrooms, l.bathrooms, l.checkin,
		       l.checkout, l.amenities, l.rules, l.image_url, l.image_key,
		       l.geometry, l.owner_id, l.created_at, l.updated_at,
		       AVG(r.rating) AS avg_rating
		FROM listing l
		LEFT JOIN review r ON r.listing_id = l.id
		GROUP BY l.id
		ORDER BY l.created_at ASC, l.id ASC
		LIMIT $1
	`
	return r.selectListings(ctx, query, limit)
}

func (r *ListingRepository) SampleRandom(ctx context.Context, limit int) ([]domain.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listing
		ORDER BY random()
		LIMIT $1
	`
	return r.selectListings(ctx, query, limit)
}

func (r *ListingRepository) selectListings(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		var listing domain.Listing
		if err := rows.StructScan(&listing); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepository) reviewsForListing(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	const query = `
		SELECT r.id, r.listing_id, r.author_id, r.comment, r.rating, r.created_at,
		       u.username AS author_username
		FROM review r
		JOIN user_account u ON u.id = r.author_id
		WHERE r.listing_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, listingID)
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

var _ ports.ListingRepository = (*ListingRepository)(nil)
