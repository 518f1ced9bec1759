// Package ipmeta is a client for IP-address metadata APIs speaking the
// ipinfo.io response format. It fetches geolocation, ASN and organization
// data for an IP address (or the caller's own), derives a country display
// name and split coordinates from the raw response, and caches raw results
// to avoid redundant network calls.
//
// The simplest usage is to build a Handler and look up an address:
//
//	h, err := ipmeta.New("") // access token is optional
//	if err != nil {
//		// bad countries file
//	}
//	d, err := h.GetDetails(ctx, ipmeta.Address("8.8.8.8"))
package ipmeta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipmeta/ipmeta-go/cache"
	"github.com/ipmeta/ipmeta-go/metrics"
	"github.com/rs/zerolog"
)

// Version identifies this client release; it is embedded in the user-agent
// header of every API request.
const Version = "1.0.0"

const (
	defaultBaseURL = "https://ipinfo.io"
	defaultTimeout = 2 * time.Second
	userAgent      = "IPmetaClient/Go/" + Version
)

// RequestOptions controls the outbound HTTP requests. All fields are
// optional.
type RequestOptions struct {
	// Timeout bounds each request, connection setup included. Zero means 2
	// seconds. Ignored when Client is set.
	Timeout time.Duration

	// BaseURL overrides the API endpoint, mainly for tests and self-hosted
	// mirrors.
	BaseURL string

	// Headers are extra headers set on every request, after the standard
	// ones. This is the passthrough for transport-level options the library
	// does not interpret.
	Headers map[string]string

	// Client replaces the HTTP client entirely (custom proxies, TLS
	// settings, instrumented transports). When set, Timeout is not applied;
	// configure it on the client itself.
	Client *http.Client
}

// Option configures a Handler.
type Option func(*Handler)

// WithCountriesFile overrides the bundled country code to name dataset with
// a JSON file at path.
func WithCountriesFile(path string) Option {
	return func(h *Handler) { h.countriesFile = path }
}

// WithRequestOptions sets the outbound request configuration.
func WithRequestOptions(opts RequestOptions) Option {
	return func(h *Handler) { h.requestOpts = opts }
}

// WithCache substitutes the cache implementation, e.g. cache.Redis for a
// cache shared between processes. When set, WithCacheOptions is ignored.
func WithCache(c cache.Cache) Option {
	return func(h *Handler) { h.cache = c }
}

// WithCacheOptions sizes the default in-memory cache.
func WithCacheOptions(opts cache.Options) Option {
	return func(h *Handler) { h.cacheOpts = opts }
}

// WithLogger enables structured logging. The default logger discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Handler) { h.log = log }
}

// WithMetrics attaches Prometheus collectors for lookup outcomes and API
// latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// Handler looks up IP metadata for the caller. It owns its cache and
// country table for its whole lifetime; there is nothing to close.
type Handler struct {
	token     string
	countries map[string]string
	cache     cache.Cache
	client    *http.Client
	baseURL   string
	headers   map[string]string
	log       zerolog.Logger
	metrics   *metrics.Metrics

	// construction-time inputs consumed by New
	countriesFile string
	requestOpts   RequestOptions
	cacheOpts     cache.Options
}

// New creates a Handler. accessToken may be empty for the API's
// unauthenticated tier. New fails when a countries file override is missing
// or not valid JSON.
func New(accessToken string, opts ...Option) (*Handler, error) {
	h := &Handler{
		token: accessToken,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	countries, err := loadCountries(h.countriesFile)
	if err != nil {
		return nil, err
	}
	h.countries = countries

	if h.cache == nil {
		h.cache = cache.NewMemory(h.cacheOpts)
	}

	h.baseURL = h.requestOpts.BaseURL
	if h.baseURL == "" {
		h.baseURL = defaultBaseURL
	}
	h.headers = h.requestOpts.Headers

	h.client = h.requestOpts.Client
	if h.client == nil {
		timeout := h.requestOpts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		h.client = &http.Client{Timeout: timeout}
	}

	return h, nil
}

// GetDetails returns the finalized metadata record for key: the raw API
// response plus country_name, latitude and longitude. Raw data comes from
// the cache when a live entry exists, otherwise from the network; derived
// fields are recomputed on every call so the cache only ever holds raw
// responses.
//
// Errors: ErrQuotaExceeded on HTTP 429, *HTTPError on any other non-2xx
// status, and transport errors from the HTTP client passed through
// unwrapped.
func (h *Handler) GetDetails(ctx context.Context, key Key) (*Details, error) {
	raw, err := h.requestDetails(ctx, key)
	if err != nil {
		return nil, err
	}
	return enrich(raw, h.countries), nil
}

// requestDetails resolves the raw response for key, cache first.
func (h *Handler) requestDetails(ctx context.Context, key Key) (map[string]any, error) {
	cacheKey := key.cacheKey()
	if h.cache.Contains(cacheKey) {
		// Re-check with Get: a TTL cache may expire the entry between the
		// two calls, in which case we fall through to the network.
		if raw, ok := h.cache.Get(cacheKey); ok {
			h.log.Debug().Str("key", key.String()).Msg("serving lookup from cache")
			h.metrics.CountLookup(metrics.OutcomeCacheHit)
			return raw, nil
		}
	}

	url := h.baseURL
	if !key.IsSelf() {
		url += "/" + key.IP()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	for name, value := range h.headers {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Error().Err(err).Str("key", key.String()).Msg("API request failed")
		h.metrics.CountLookup(metrics.OutcomeError)
		// Transport errors reach the caller unchanged so they can inspect
		// url.Error, context.DeadlineExceeded, etc.
		return nil, err
	}
	defer resp.Body.Close()
	h.metrics.ObserveAPIRequest(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusTooManyRequests {
		h.log.Warn().Str("key", key.String()).Msg("API request quota exceeded")
		h.metrics.CountLookup(metrics.OutcomeQuota)
		return nil, ErrQuotaExceeded
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		h.log.Error().Int("status", resp.StatusCode).Str("key", key.String()).Msg("API returned error status")
		h.metrics.CountLookup(metrics.OutcomeError)
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		h.metrics.CountLookup(metrics.OutcomeError)
		return nil, fmt.Errorf("decode API response: %w", err)
	}

	h.cache.Set(cacheKey, raw)
	h.log.Debug().Str("key", key.String()).Msg("lookup fetched from API")
	h.metrics.CountLookup(metrics.OutcomeNetwork)
	return raw, nil
}
