package middleware

import (
	"net/http"
	"strconv"
	"time"

	"cep-distance-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records Prometheus HTTP metrics for each request, labeled by the
// chi route pattern rather than the raw path to keep cardinality bounded.
func Metrics(reg *metrics.MetricsRegistry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.HTTPRequestsInFlight.WithLabelValues(r.Method).Inc()
			defer reg.HTTPRequestsInFlight.WithLabelValues(r.Method).Dec()

			sw := &statusWriter{ResponseWriter: w}

			start := time.Now()
			next.ServeHTTP(sw, r)
			duration := time.Since(start).Seconds()

			routePattern := chi.RouteContext(r.Context()).RoutePattern()
			if routePattern == "" {
				routePattern = "unknown"
			}

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			reg.HTTPRequestsTotal.WithLabelValues(routePattern, r.Method, strconv.Itoa(status)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(routePattern, r.Method).Observe(duration)
		})
	}
}
