package ports

import (
	"context"
	"cep-distance-service/internal/domain"
)

// Contract for computing the great-circle distance between two points.
// Implementations may run in-process or delegate to a remote service; the
// contract is identical either way.
type DistanceCalculator interface {
	// Return the distance in kilometers between origin and destination.
	DistanceKm(ctx context.Context, origin, destination domain.Coordinates) (float64, error)
}
