package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ipmeta "github.com/ipmeta/ipmeta-go"
	"github.com/ipmeta/ipmeta-go/internal/service"
)

// stubLookuper satisfies service.Lookuper with a fixed result.
type stubLookuper struct {
	details *ipmeta.Details
	err     error
}

func (s *stubLookuper) GetDetails(ctx context.Context, key ipmeta.Key) (*ipmeta.Details, error) {
	return s.details, s.err
}

// newTestHandler wires a LookupHandler over a stubbed library.
func newTestHandler(stub *stubLookuper) *LookupHandler {
	return NewLookupHandler(service.NewLookupService(stub, nil))
}

// doRequest runs one request through the handler.
func doRequest(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// TestLookupHandler_Lookup_Success tests the happy path.
func TestLookupHandler_Lookup_Success(t *testing.T) {
	h := newTestHandler(&stubLookuper{details: &ipmeta.Details{}})

	rec := doRequest(h.Lookup, "/v1/lookup?ip=8.8.8.8")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Errorf("expected decodable JSON body: %v", err)
	}
}

// TestLookupHandler_Lookup_MissingParam tests the missing ip query case.
func TestLookupHandler_Lookup_MissingParam(t *testing.T) {
	h := newTestHandler(&stubLookuper{details: &ipmeta.Details{}})

	rec := doRequest(h.Lookup, "/v1/lookup")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestLookupHandler_ErrorMapping tests library error to status code mapping.
func TestLookupHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		stub           *stubLookuper
		expectedStatus int
	}{
		{
			name:           "invalid ip",
			target:         "/v1/lookup?ip=not-an-ip",
			stub:           &stubLookuper{details: &ipmeta.Details{}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "quota exceeded",
			target:         "/v1/lookup?ip=8.8.8.8",
			stub:           &stubLookuper{err: ipmeta.ErrQuotaExceeded},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "upstream error",
			target:         "/v1/lookup?ip=8.8.8.8",
			stub:           &stubLookuper{err: &ipmeta.HTTPError{StatusCode: 500, Body: "boom"}},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "upstream timeout",
			target:         "/v1/lookup?ip=8.8.8.8",
			stub:           &stubLookuper{err: context.DeadlineExceeded},
			expectedStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.stub)

			rec := doRequest(h.Lookup, tt.target)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("expected JSON error body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected an error message in the body")
			}
		})
	}
}

// TestLookupHandler_Self tests the own-address endpoint.
func TestLookupHandler_Self(t *testing.T) {
	h := newTestHandler(&stubLookuper{details: &ipmeta.Details{}})

	rec := doRequest(h.Self, "/v1/self")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

// TestLookupHandler_Self_Error tests error mapping on the self endpoint.
func TestLookupHandler_Self_Error(t *testing.T) {
	h := newTestHandler(&stubLookuper{err: ipmeta.ErrQuotaExceeded})

	rec := doRequest(h.Self, "/v1/self")

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
}
