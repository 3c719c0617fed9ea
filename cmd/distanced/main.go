package main

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cep-distance-service/internal/geo"
	"cep-distance-service/internal/logging"
	"cep-distance-service/internal/metrics"
	"cep-distance-service/internal/middleware"
)

// distanced is the standalone distance-calculation service. It exposes the
// endpoint the main server's remote calculator talks to, so the haversine
// step can be deployed as its own process.
func main() {
	godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	port := getEnv("DISTANCED_PORT", "8081")

	if err := logging.Init(appEnv); err != nil {
		panic(fmt.Sprintf("initialize logger: %v", err))
	}
	defer logging.Close()

	reg := metrics.NewMetricsRegistry()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(reg))
	r.Use(middleware.Logging)
	r.Get("/health", handleHealth)
	r.Post("/distance", handleDistance)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", r)

	logging.Info("distance service listening", "port", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logging.Fatal("server stopped", "error", srv.ListenAndServe())
}

type point struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type distanceRequest struct {
	Origin      *point `json:"origin"`
	Destination *point `json:"destination"`
}

type distanceResponse struct {
	Origin      point   `json:"origin"`
	Destination point   `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleDistance(w http.ResponseWriter, r *http.Request) {
	var req distanceRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := validatePoint("origin", req.Origin); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := validatePoint("destination", req.Destination); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	km := geo.HaversineKm(*req.Origin.Lat, *req.Origin.Lon, *req.Destination.Lat, *req.Destination.Lon)
	writeJSON(w, http.StatusOK, distanceResponse{
		Origin:      *req.Origin,
		Destination: *req.Destination,
		DistanceKm:  roundKm(km),
	})
}

func validatePoint(name string, p *point) error {
	if p == nil || p.Lat == nil || p.Lon == nil {
		return fmt.Errorf("%s: lat and lon are required", name)
	}
	if !geo.ValidLatitude(*p.Lat) {
		return fmt.Errorf("%s: latitude %v out of range", name, *p.Lat)
	}
	if !geo.ValidLongitude(*p.Lon) {
		return fmt.Errorf("%s: longitude %v out of range", name, *p.Lon)
	}
	return nil
}

func roundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("encode response", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
