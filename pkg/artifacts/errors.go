package artifacts

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a builder is created without a token.
var ErrMissingCredential = errors.New("artifacts: missing bearer token")

// ErrUnknownAction is returned for an action outside the supported set.
var ErrUnknownAction = errors.New("artifacts: unknown action")

// InvalidURLError reports a composed endpoint URL that does not parse as an
// absolute URL. It is raised as a panic by MustURL.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("artifacts: invalid url %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("artifacts: invalid url %q", e.URL)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

// TransportError wraps a failure to obtain any response from the server.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a payload that could not be mapped onto the expected
// schema. Path names the failing field, e.g. "data.characters_online", and
// is empty when the JSON itself is malformed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errMissingField = errors.New("required field missing")
