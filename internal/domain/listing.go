package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultCoordinates is the fallback map position used when geocoding fails or
// a listing carries no usable geometry. Stored as [longitude, latitude].
var DefaultCoordinates = [2]float64{77.209, 28.6139}

// Geometry is a GeoJSON Point. When present it always has type "Point" and
// exactly two coordinates, [longitude, latitude].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (g Geometry) IsValid() bool {
	return g.Type == "Point" && len(g.Coordinates) == 2
}

// DefaultGeometry returns a Point at DefaultCoordinates.
func DefaultGeometry() Geometry {
	return Geometry{Type: "Point", Coordinates: []float64{DefaultCoordinates[0], DefaultCoordinates[1]}}
}

func (g Geometry) Value() (driver.Value, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (g *Geometry) Scan(value any) error {
	if value == nil {
		*g = Geometry{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte for geometry, got %T", value)
	}
	return json.Unmarshal(bytes, g)
}

// NullGeometry wraps Geometry for nullable columns.
type NullGeometry struct {
	Geometry Geometry
	Valid    bool
}

func (n NullGeometry) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Geometry.Value()
}

func (n *NullGeometry) Scan(value any) error {
	if value == nil {
		*n = NullGeometry{}
		return nil
	}
	if err := n.Geometry.Scan(value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

type Listing struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description *string        `db:"description" json:"description,omitempty"`
	Address     *string        `db:"address" json:"address,omitempty"`
	Country     *string        `db:"country" json:"country,omitempty"`
	Location    *string        `db:"location" json:"location,omitempty"`
	Price       *float64       `db:"price" json:"price,omitempty"`
	Type        *string        `db:"type" json:"type,omitempty"`
	Guests      *int           `db:"guests" json:"guests,omitempty"`
	Bedrooms    *int           `db:"bedrooms" json:"bedrooms,omitempty"`
	Bathrooms   *int           `db:"bathrooms" json:"bathrooms,omitempty"`
	Checkin     *string        `db:"checkin" json:"checkin,omitempty"`
	Checkout    *string        `db:"checkout" json:"checkout,omitempty"`
	Amenities   pq.StringArray `db:"amenities" json:"amenities,omitempty"`
	Rules       *string        `db:"rules" json:"rules,omitempty"`
	ImageURL    *string        `db:"image_url" json:"image_url,omitempty"`
	ImageKey    *string        `db:"image_key" json:"-"`
	Geometry    NullGeometry   `db:"geometry" json:"geometry,omitempty"`
	OwnerID     uuid.UUID      `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`

	OwnerUsername *string `db:"owner_username" json:"-"`

	Reviews   []Review `db:"-" json:"reviews,omitempty"`
	AvgRating *float64 `db:"avg_rating" json:"avg_rating,omitempty"`
	Owner     *User    `db:"-" json:"owner,omitempty"`
}

// MapCoordinates returns the [lng, lat] pair the map widget centers on,
// substituting DefaultCoordinates when geometry is absent or malformed.
func (l *Listing) MapCoordinates() [2]float64 {
	if l.Geometry.Valid && l.Geometry.Geometry.IsValid() {
		return [2]float64{l.Geometry.Geometry.Coordinates[0], l.Geometry.Geometry.Coordinates[1]}
	}
	return DefaultCoordinates
}

// ListingFields carries the form payload of a create or update request. Nil
// pointers mean "not supplied"; update applies only the supplied fields.
type ListingFields struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Country     *string   `json:"country,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Type        *string   `json:"type,omitempty"`
	Guests      *int      `json:"guests,omitempty"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	Checkin     *string   `json:"checkin,omitempty"`
	Checkout    *string   `json:"checkout,omitempty"`
	Amenities   *[]string `json:"amenities,omitempty"`
	Rules       *string   `json:"rules,omitempty"`
}

// ListingRelation names a reference the data access layer resolves into the
// composed view. Population is always explicit; nothing auto-expands.
type ListingRelation string

const (
	ListingRelationReviews ListingRelation = "reviews"
	ListingRelationOwner   ListingRelation = "owner"
)
