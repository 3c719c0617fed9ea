package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cep-distance-service/internal/adapters/geometry"
	"cep-distance-service/internal/adapters/lookup"
	"cep-distance-service/internal/adapters/repositories"
	"cep-distance-service/internal/api"
	"cep-distance-service/internal/config"
	"cep-distance-service/internal/logging"
	"cep-distance-service/internal/metrics"
	"cep-distance-service/internal/platform/db"
	"cep-distance-service/internal/ports"
	"cep-distance-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (ViaCEP, Nominatim, SQL stores) behind ports
// and starts the HTTP server.
func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		panic(fmt.Sprintf("initialize logger: %v", err))
	}
	defer logging.Close()

	store, repo, err := openStore(cfg)
	if err != nil {
		logging.Fatal("open store", "error", err)
	}
	defer store.Close()

	reg := metrics.NewMetricsRegistry()

	resolver := lookup.NewViaCEPClient(cfg.ViaCEPBaseURL, cfg.LookupTimeout, reg)
	geocoder := lookup.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.GeocodeTimeout, reg)

	// Distance is computed in-process unless a remote calculation service is
	// configured.
	var calculator ports.DistanceCalculator = geometry.LocalCalculator{}
	if cfg.DistanceServiceURL != "" {
		calculator = geometry.NewRemoteCalculator(cfg.DistanceServiceURL, cfg.DistanceTimeout, reg)
		logging.Info("using remote distance service", "url", cfg.DistanceServiceURL)
	}

	svc := services.NewQueryService(resolver, geocoder, calculator, repo, reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api.NewRouter(svc, reg))

	logging.Info("server listening", "port", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logging.Fatal("server stopped", "error", srv.ListenAndServe())
}

// openStore picks the persistence backend: postgres when DATABASE_URL is
// set, a local SQLite file otherwise. The schema is initialized on startup.
func openStore(cfg *config.Config) (*sql.DB, ports.QueryRepository, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		logging.Info("using postgres store")
		return conn, repositories.NewPostgresQueryRepository(conn), nil
	}

	conn, err := db.OpenSqlite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSqliteSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	logging.Info("using sqlite store", "path", cfg.DBPath)
	return conn, repositories.NewSqliteQueryRepository(conn), nil
}
