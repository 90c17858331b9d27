package domain

import (
	"time"

	"github.com/google/uuid"
)

// Experience is an independent bookable activity. It has no relation to
// listings or reviews.
type Experience struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Price       *float64  `db:"price" json:"price,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
