package artifacts

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samvad-hq/artifacts-client/pkg/httpclient"
)

const contentTypeJSON = "application/json"

// Credential is a bearer token.
type Credential string

// String redacts the token so it never lands in logs.
func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[redacted]"
}

// RequestBuilder turns endpoints into transport-ready requests. It holds the
// base URL and credential for the lifetime of the process.
type RequestBuilder struct {
	baseURL string
	token   Credential
}

// NewRequestBuilder validates baseURL and token once so Build never has to.
func NewRequestBuilder(baseURL string, token Credential) (*RequestBuilder, error) {
	if strings.TrimSpace(string(token)) == "" {
		return nil, ErrMissingCredential
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, &InvalidURLError{URL: baseURL, Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &InvalidURLError{URL: baseURL, Err: fmt.Errorf("base url must be absolute http(s)")}
	}
	return &RequestBuilder{baseURL: baseURL, token: token}, nil
}

// BaseURL returns the configured API root.
func (b *RequestBuilder) BaseURL() string { return b.baseURL }

// Build produces the request for e. It panics with an *InvalidURLError if
// the endpoint composes an invalid URL.
func (b *RequestBuilder) Build(e Endpoint) httpclient.Request {
	req := httpclient.Request{
		Method: e.Method(),
		URL:    MustURL(b.baseURL, e),
		Header: b.headers(),
	}
	if bp, ok := e.(BodyProvider); ok {
		if body := bp.Body(); body != nil {
			req.Body = body
		}
	}
	return req
}

func (b *RequestBuilder) headers() http.Header {
	h := make(http.Header, 3)
	h.Set("Accept", contentTypeJSON)
	h.Set("Content-Type", contentTypeJSON)
	h.Set("Authorization", "Bearer "+string(b.token))
	return h
}
