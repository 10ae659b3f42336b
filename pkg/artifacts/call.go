package artifacts

import (
	"context"
	"sync"

	"github.com/samvad-hq/artifacts-client/pkg/httpclient"
)

// Transport issues a request asynchronously and invokes done exactly once.
type Transport = httpclient.AsyncClient

// Handler processes a received response. Its error becomes the call's result.
type Handler func(resp httpclient.Response) error

// Caller turns one asynchronous transport call into a blocking one.
type Caller struct {
	transport Transport
}

// NewCaller wraps transport.
func NewCaller(transport Transport) *Caller {
	return &Caller{transport: transport}
}

// Call fires req and blocks until the completion handler has run. Transport
// failures surface as *TransportError; otherwise handle's error is returned.
//
// There is no timeout beyond what ctx and the transport enforce: a transport
// that never calls back blocks Call forever.
func (c *Caller) Call(ctx context.Context, req httpclient.Request, handle Handler) error {
	var (
		result error
		once   sync.Once
	)
	done := make(chan struct{})

	c.transport.Go(ctx, req, func(resp httpclient.Response, err error) {
		once.Do(func() {
			defer close(done)
			if err != nil {
				result = &TransportError{Method: req.Method, URL: req.URL, Err: err}
				return
			}
			if handle != nil {
				result = handle(resp)
			}
		})
	})

	<-done
	return result
}
