package v1

import (
	"github.com/ipmeta/ipmeta-go/internal/handler"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all v1 API routes.
func SetupRoutes(lookupHandler *handler.LookupHandler) chi.Router {
	r := chi.NewRouter()

	// GET /v1/lookup?ip=<ip>
	r.Get("/lookup", lookupHandler.Lookup)

	// GET /v1/self — metadata for the daemon's own public address
	r.Get("/self", lookupHandler.Self)

	return r
}
