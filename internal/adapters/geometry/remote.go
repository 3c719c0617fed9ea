package geometry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/metrics"
)

// RemoteCalculator delegates distance computation to the isolated
// distance-calculation service over HTTP. The contract is identical to the
// in-process calculator; the remote form exists for deployment separation.
type RemoteCalculator struct {
	session *http.Client
	baseURL string
	metrics *metrics.MetricsRegistry
}

func NewRemoteCalculator(baseURL string, timeout time.Duration, reg *metrics.MetricsRegistry) *RemoteCalculator {
	return &RemoteCalculator{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: reg,
	}
}

type pointPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type distanceRequest struct {
	Origin      pointPayload `json:"origin"`
	Destination pointPayload `json:"destination"`
}

type distanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

// Return the distance in kilometers between origin and destination.
func (c *RemoteCalculator) DistanceKm(ctx context.Context, origin, destination domain.Coordinates) (_ float64, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream("distanced", start, err) }()

	payload, err := json.Marshal(distanceRequest{
		Origin:      pointPayload{Lat: origin.Lat, Lon: origin.Lon},
		Destination: pointPayload{Lat: destination.Lat, Lon: destination.Lon},
	})
	if err != nil {
		return 0, fmt.Errorf("remote distance: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/distance", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("remote distance: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return 0, fmt.Errorf("remote distance: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("remote distance: %w: status %d: %s",
			domain.ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("remote distance: decode response: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if decoded.DistanceKm < 0 || math.IsNaN(decoded.DistanceKm) || math.IsInf(decoded.DistanceKm, 0) {
		return 0, fmt.Errorf("remote distance: %w: invalid distance %v", domain.ErrUpstreamUnavailable, decoded.DistanceKm)
	}

	return decoded.DistanceKm, nil
}
