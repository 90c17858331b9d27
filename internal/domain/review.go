package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review belongs to exactly one Listing. The listing side owns the relation;
// the row carries the listing id, so membership and document are one record.
type Review struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ListingID uuid.UUID `db:"listing_id" json:"listing_id"`
	AuthorID  uuid.UUID `db:"author_id" json:"author_id"`
	Comment   *string   `db:"comment" json:"comment,omitempty"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorUsername *string `db:"author_username" json:"-"`

	// ListingName is filled when reviews are listed across listings, as on
	// the landing page.
	ListingName *string `db:"listing_name" json:"-"`
}
