package domain

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ListingID uuid.UUID `db:"listing_id" json:"listing_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteListItem is a favorite joined with the listing fields the saved
// page renders.
type FavoriteListItem struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	ListingID   uuid.UUID `db:"listing_id"`
	CreatedAt   time.Time `db:"created_at"`
	ListingName string    `db:"listing_name"`
	Location    *string   `db:"location"`
	Country     *string   `db:"country"`
	Price       *float64  `db:"price"`
	ImageURL    *string   `db:"image_url"`
}
