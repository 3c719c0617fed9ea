package geometry

import (
	"context"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/geo"
)

// LocalCalculator computes great-circle distances in-process.
type LocalCalculator struct{}

func (LocalCalculator) DistanceKm(_ context.Context, origin, destination domain.Coordinates) (float64, error) {
	return geo.HaversineKm(origin.Lat, origin.Lon, destination.Lat, destination.Lon), nil
}
