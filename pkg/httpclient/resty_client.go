package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the Client and AsyncClient interfaces.
type RestyClient struct {
	client *resty.Client
}

var (
	_ Client      = (*RestyClient)(nil)
	_ AsyncClient = (*RestyClient)(nil)
)

// NewRestyClient creates a new RestyClient. A zero timeout waits indefinitely.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Do performs the request and blocks until the response is read.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	if len(req.Header) > 0 {
		rr.SetHeaderMultiValues(req.Header)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}
	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// Go performs the request on its own goroutine and hands the outcome to done.
func (r *RestyClient) Go(ctx context.Context, req Request, done func(Response, error)) {
	go func() {
		done(r.Do(ctx, req))
	}()
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte            { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int         { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string          { return r.resp.Status() }
func (r *restyResponseAdapter) Proto() string           { return r.resp.Proto() }
func (r *restyResponseAdapter) Header() http.Header     { return r.resp.Header() }
func (r *restyResponseAdapter) Duration() time.Duration { return r.resp.Time() }
