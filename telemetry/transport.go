package telemetry

import (
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// requestIDTransport stamps a fresh X-Request-Id on every outbound request.
// The id ties client logs, traces and server logs together, and gives the
// backend a handle for detecting duplicate order submissions once it learns
// to look at it.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone per RoundTripper contract: the original request is not ours to
	// mutate.
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-Id", uuid.New().String())
	return t.base.RoundTrip(clone)
}

// NewTransport wraps base with trace propagation and request-id stamping.
// A nil base uses http.DefaultTransport.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(&requestIDTransport{base: base})
}
