package ports

import (
	"context"

	"github.com/wanderhq/wanderlust/internal/domain"
)

// Geocoder resolves a free-text place name to a GeoJSON Point. A failed
// lookup is reported, never invented; callers decide the fallback.
type Geocoder interface {
	Forward(ctx context.Context, place string) (domain.Geometry, error)
}
