package api

import (
	"net/http"

	"cep-distance-service/internal/api/handlers"
	"cep-distance-service/internal/metrics"
	"cep-distance-service/internal/middleware"
	"cep-distance-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.QueryService, reg *metrics.MetricsRegistry) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if reg != nil {
		r.Use(middleware.Metrics(reg))
	}
	r.Use(middleware.Logging)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	distanceHandler := &handlers.DistanceHandler{Service: svc}
	queryHandler := &handlers.QueryHandler{Service: svc}

	r.Get("/health", handlers.Health)
	r.Post("/distance-by-postal-code", distanceHandler.Compute)

	r.Route("/queries", func(q chi.Router) {
		q.Get("/", queryHandler.List)
		q.Get("/{id}", queryHandler.Get)
		q.Put("/{id}", queryHandler.UpdateNotes)
		q.Delete("/{id}", queryHandler.Delete)
	})

	return r
}
