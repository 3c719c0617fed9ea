package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/metrics"
)

// NominatimClient implements Geocoder using the Nominatim/OSM search API.
//
// When the full query yields no match, one fallback attempt is made with
// only the trailing city/state/country components before reporting
// ErrNoGeocodeMatch. Ranking beyond "first result wins" is out of scope.
type NominatimClient struct {
	session   *http.Client
	baseURL   string
	userAgent string
	metrics   *metrics.MetricsRegistry
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, reg *metrics.MetricsRegistry) *NominatimClient {
	return &NominatimClient{
		session:   &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		metrics:   reg,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode a free-text address into coordinates.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream("nominatim", start, err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: %w: empty query", domain.ErrInvalidInput)
	}

	coords, ok, err := c.search(ctx, query)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if ok {
		return coords, nil
	}

	// Fallback: retry at city level (last three comma-separated components,
	// typically city, state, country).
	parts := strings.Split(query, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) >= 3 {
		cityLevel := strings.Join(parts[len(parts)-3:], ", ")
		coords, ok, err = c.search(ctx, cityLevel)
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode fallback %q: %w", cityLevel, err)
		}
		if ok {
			return coords, nil
		}
	}

	return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", query, domain.ErrNoGeocodeMatch)
}

// search issues one provider call and reports whether a candidate was found.
// Missing or malformed provider fields degrade to "no match", never to a
// partially filled coordinate.
func (c *NominatimClient) search(ctx context.Context, query string) (domain.Coordinates, bool, error) {
	req, err := newRequest(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "0")
	q.Set("countrycodes", "br")
	req.URL.RawQuery = q.Encode()

	resp, err := do(c.session, req)
	if err != nil {
		return domain.Coordinates{}, false, err
	}
	defer resp.Body.Close()

	var items []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode response: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if len(items) == 0 {
		return domain.Coordinates{}, false, nil
	}

	lat, latErr := strconv.ParseFloat(items[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(items[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, false, nil
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, true, nil
}
