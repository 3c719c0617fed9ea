package dto

import (
	"time"

	"cep-distance-service/internal/domain"
)

type DistanceRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Notes       *string `json:"notes"`
}

type UpdateNotesRequest struct {
	Notes *string `json:"notes"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type QueryResponse struct {
	ID             int64         `json:"id"`
	OriginCEP      string        `json:"origin_cep"`
	DestinationCEP string        `json:"destination_cep"`
	Origin         PointResponse `json:"origin"`
	Destination    PointResponse `json:"destination"`
	DistanceKm     float64       `json:"distance_km"`
	CreatedAt      time.Time     `json:"created_at"`
	Notes          *string       `json:"notes"`
}

type ListQueriesResponse struct {
	Total int             `json:"total"`
	Items []QueryResponse `json:"items"`
}

// FromRecord shapes a domain record for the API boundary.
func FromRecord(rec domain.QueryRecord) QueryResponse {
	return QueryResponse{
		ID:             rec.ID,
		OriginCEP:      rec.OriginCEP,
		DestinationCEP: rec.DestinationCEP,
		Origin:         PointResponse{Lat: rec.OriginLat, Lon: rec.OriginLon},
		Destination:    PointResponse{Lat: rec.DestinationLat, Lon: rec.DestinationLon},
		DistanceKm:     rec.DistanceKm,
		CreatedAt:      rec.CreatedAt,
		Notes:          rec.Notes,
	}
}
