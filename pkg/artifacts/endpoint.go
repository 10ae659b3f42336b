package artifacts

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/samvad-hq/artifacts-client/internal/domain"
)

// Endpoint is a logical API operation before it becomes an HTTP request.
// The set of variants is closed: StatusEndpoint and ActionEndpoint.
type Endpoint interface {
	Method() string
	// Path is appended verbatim to the base URL.
	Path() string
	// check rejects values that would compose a URL outside the API.
	check() error
}

// BodyProvider is implemented by endpoints that carry a JSON request body.
type BodyProvider interface {
	Body() any
}

// StatusEndpoint is GET on the API root.
type StatusEndpoint struct{}

func (StatusEndpoint) Method() string { return http.MethodGet }
func (StatusEndpoint) Path() string   { return "" }
func (StatusEndpoint) check() error    { return nil }

// ActionEndpoint is POST my/<character>/action/<verb>.
type ActionEndpoint struct {
	Character domain.Character
	Action    domain.Action
	// Payload is sent as the JSON body when non-nil, e.g. a domain.Point
	// destination for ActionMove.
	Payload any
}

func (ActionEndpoint) Method() string { return http.MethodPost }

func (e ActionEndpoint) Path() string {
	return e.Character.Path() + "/" + e.Action.Path()
}

func (e ActionEndpoint) Body() any { return e.Payload }

func (e ActionEndpoint) check() error {
	if !e.Action.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownAction, e.Action)
	}
	if e.Character.Name == "" || url.PathEscape(e.Character.Name) != e.Character.Name {
		return fmt.Errorf("character name %q is not a plain path segment", e.Character.Name)
	}
	return nil
}

// ResolveURL joins base and the endpoint path and checks the result is an
// absolute URL with no query or fragment.
func ResolveURL(base string, e Endpoint) (string, error) {
	raw := base + e.Path()
	if err := e.check(); err != nil {
		return "", &InvalidURLError{URL: raw, Err: err}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidURLError{URL: raw, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &InvalidURLError{URL: raw, Err: fmt.Errorf("not an absolute url")}
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return "", &InvalidURLError{URL: raw, Err: fmt.Errorf("unexpected query or fragment")}
	}
	return raw, nil
}

// MustURL is like ResolveURL but panics on an invalid URL.
func MustURL(base string, e Endpoint) string {
	u, err := ResolveURL(base, e)
	if err != nil {
		panic(err)
	}
	return u
}
