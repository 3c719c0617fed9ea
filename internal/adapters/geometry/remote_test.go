package geometry

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cep-distance-service/internal/domain"
)

func TestRemoteCalculatorDistance(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/distance" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req distanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Origin.Lat != -23.5505 || req.Destination.Lon != -43.1729 {
			t.Errorf("unexpected payload: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(distanceResponse{DistanceKm: 360.75})
	}))
	defer ts.Close()

	calc := NewRemoteCalculator(ts.URL, 5*time.Second, nil)

	km, err := calc.DistanceKm(context.Background(),
		domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
		domain.Coordinates{Lat: -22.9068, Lon: -43.1729},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 360.75 {
		t.Fatalf("distance = %v, want 360.75", km)
	}
}

func TestRemoteCalculatorUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	calc := NewRemoteCalculator(ts.URL, 5*time.Second, nil)

	_, err := calc.DistanceKm(context.Background(), domain.Coordinates{}, domain.Coordinates{Lat: 1})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRemoteCalculatorRejectsInvalidDistance(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"distance_km": -5}`))
	}))
	defer ts.Close()

	calc := NewRemoteCalculator(ts.URL, 5*time.Second, nil)

	_, err := calc.DistanceKm(context.Background(), domain.Coordinates{}, domain.Coordinates{Lat: 1})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestLocalCalculatorMatchesHaversine(t *testing.T) {
	calc := LocalCalculator{}

	same, err := calc.DistanceKm(context.Background(),
		domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
		domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
	)
	if err != nil || same != 0 {
		t.Fatalf("identical points: km=%v err=%v, want 0, nil", same, err)
	}

	ab, _ := calc.DistanceKm(context.Background(),
		domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
		domain.Coordinates{Lat: -22.9068, Lon: -43.1729},
	)
	ba, _ := calc.DistanceKm(context.Background(),
		domain.Coordinates{Lat: -22.9068, Lon: -43.1729},
		domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
	)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("asymmetric: %v vs %v", ab, ba)
	}
	if ab < 350 || ab > 370 {
		t.Fatalf("Sao Paulo -> Rio = %v km, want roughly 360", ab)
	}
}
