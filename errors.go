package ipmeta

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned when the API responds with HTTP 429. The
// caller has exhausted its request quota and should back off; the library
// never retries on its own.
var ErrQuotaExceeded = errors.New("ipmeta: request quota exceeded")

// HTTPError is returned for any non-2xx API response other than 429. It
// carries the status code and the raw response body for caller inspection.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ipmeta: unexpected status %d from API: %s", e.StatusCode, e.Body)
}
