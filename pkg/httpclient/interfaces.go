package httpclient

import (
	"context"
	"net/http"
	"time"
)

// Request is a transport-ready HTTP request descriptor.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Body is serialized as JSON when non-nil.
	Body any
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Proto() string
	Header() http.Header
	Duration() time.Duration
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// AsyncClient issues a request in the background and reports the outcome
// through done, which is called exactly once.
type AsyncClient interface {
	Go(ctx context.Context, req Request, done func(Response, error))
}
