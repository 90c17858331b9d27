package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wanderhq/wanderlust/internal/domain"
	"github.com/wanderhq/wanderlust/internal/repository/ports"
)

// ErrUnavailable is returned for any lookup failure: network trouble, a
// non-200 response, or a place Mapbox cannot resolve. Callers treat all of
// these the same and fall back to a default point.
var ErrUnavailable = errors.New("geocode: unavailable")

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxGeocoder resolves place names through the Mapbox forward geocoding
// API.
type MapboxGeocoder struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewMapboxGeocoder(token string, timeout time.Duration) *MapboxGeocoder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MapboxGeocoder{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// NewMapboxGeocoderWithBaseURL exists for tests pointing at a local server.
func NewMapboxGeocoderWithBaseURL(token, baseURL string, timeout time.Duration) *MapboxGeocoder {
	g := NewMapboxGeocoder(token, timeout)
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

type mapboxResponse struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (g *MapboxGeocoder) Forward(ctx context.Context, place string) (domain.Geometry, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return domain.Geometry{}, ErrUnavailable
	}

	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		g.baseURL, url.PathEscape(place), url.QueryEscape(g.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Geometry{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Geometry{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Geometry{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Geometry{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if len(payload.Features) == 0 {
		return domain.Geometry{}, fmt.Errorf("%w: no match for %q", ErrUnavailable, place)
	}

	geom := domain.Geometry{
		Type:        payload.Features[0].Geometry.Type,
		Coordinates: payload.Features[0].Geometry.Coordinates,
	}
	if !geom.IsValid() {
		return domain.Geometry{}, fmt.Errorf("%w: malformed geometry", ErrUnavailable)
	}
	return geom, nil
}

var _ ports.Geocoder = (*MapboxGeocoder)(nil)
