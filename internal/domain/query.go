package domain

import "time"

// Represents the persisted result of one distance computation.
// A QueryRecord is immutable except for Notes; coordinates and distance are
// fixed at creation time and never recomputed. The ID is assigned by the
// repository on insert and never reused after deletion.
type QueryRecord struct {
	ID             int64
	OriginCEP      string
	DestinationCEP string
	OriginLat      float64
	OriginLon      float64
	DestinationLat float64
	DestinationLon float64
	DistanceKm     float64
	CreatedAt      time.Time
	Notes          *string
}

// Origin returns the geocoded origin coordinates.
func (q QueryRecord) Origin() Coordinates {
	return Coordinates{Lat: q.OriginLat, Lon: q.OriginLon}
}

// Destination returns the geocoded destination coordinates.
func (q QueryRecord) Destination() Coordinates {
	return Coordinates{Lat: q.DestinationLat, Lon: q.DestinationLon}
}
