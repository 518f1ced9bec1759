package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	ipmeta "github.com/ipmeta/ipmeta-go"
	"github.com/ipmeta/ipmeta-go/internal/service"
)

// errorResponse is the standard error response format.
type errorResponse struct {
	Error string `json:"error"`
}

// LookupHandler handles HTTP requests for IP lookups. It deals with HTTP
// concerns only: query parsing, status code mapping and JSON encoding.
// Business logic lives in the service layer.
type LookupHandler struct {
	service *service.LookupService
}

// NewLookupHandler creates a new lookup handler with the given service.
func NewLookupHandler(service *service.LookupService) *LookupHandler {
	return &LookupHandler{
		service: service,
	}
}

// Lookup handles GET /v1/lookup?ip=<ip>.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		h.respondError(w, http.StatusBadRequest, "Missing 'ip' query parameter")
		return
	}

	details, err := h.service.Lookup(r.Context(), ip)
	if err != nil {
		h.respondLookupError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, details.All())
}

// Self handles GET /v1/self, resolving the daemon's own public address.
func (h *LookupHandler) Self(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.LookupSelf(r.Context())
	if err != nil {
		h.respondLookupError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, details.All())
}

// respondLookupError maps library errors to status codes.
func (h *LookupHandler) respondLookupError(w http.ResponseWriter, err error) {
	var httpErr *ipmeta.HTTPError
	switch {
	case errors.Is(err, service.ErrInvalidIP):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ipmeta.ErrQuotaExceeded):
		h.respondError(w, http.StatusTooManyRequests, "Upstream request quota exceeded")
	case errors.As(err, &httpErr):
		h.respondError(w, http.StatusBadGateway, "Upstream API error")
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, "Upstream API timed out")
	default:
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON writes a JSON response with the given status code.
func (h *LookupHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing left to signal to the client.
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting.
func (h *LookupHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, errorResponse{Error: message})
}
