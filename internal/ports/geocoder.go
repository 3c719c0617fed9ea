package ports

import (
	"context"
	"cep-distance-service/internal/domain"
)

// Port: a boundary for converting a free-text address into coordinates.
type Geocoder interface {
	// Geocode an address query. When the provider returns multiple
	// candidates the first one wins. Fails with domain.ErrNoGeocodeMatch
	// when no candidate exists, and domain.ErrUpstreamUnavailable on
	// transport failures.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}
