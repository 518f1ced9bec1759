package router

import (
	"net/http"

	"github.com/ipmeta/ipmeta-go/internal/handler"
	"github.com/ipmeta/ipmeta-go/internal/logger"
	custommiddleware "github.com/ipmeta/ipmeta-go/internal/middleware"
	v1 "github.com/ipmeta/ipmeta-go/internal/router/v1"
	"github.com/ipmeta/ipmeta-go/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the chi router with all middleware and
// routes. Order matters: RequestID first so the logging middleware can pick
// it up, Recoverer before anything that may panic.
func SetupRouter(lookupHandler *handler.LookupHandler, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(custommiddleware.MetricsMiddleware(m))

	// Versioned API routes
	r.Mount("/v1", v1.SetupRoutes(lookupHandler))

	// Health check endpoint, used by load balancers and monitoring
	r.Get("/health", healthCheckHandler)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthCheckHandler returns 200 OK while the daemon is running.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
