package artifacts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samvad-hq/artifacts-client/internal/domain"
	"github.com/samvad-hq/artifacts-client/internal/logger"
	"github.com/samvad-hq/artifacts-client/pkg/httpclient"
)

// ResponseMeta is the HTTP-level metadata of a completed call.
type ResponseMeta struct {
	StatusCode int           `json:"status_code"`
	Status     string        `json:"status"`
	Proto      string        `json:"proto"`
	Header     http.Header   `json:"header"`
	Duration   time.Duration `json:"duration"`
}

func metaOf(resp httpclient.Response) ResponseMeta {
	return ResponseMeta{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Proto:      resp.Proto(),
		Header:     resp.Header(),
		Duration:   resp.Duration(),
	}
}

// StatusResult is the outcome of a status call that reached the server.
type StatusResult struct {
	Meta   ResponseMeta
	Status domain.StatusInfo
}

// Client is the Artifacts API facade: one synchronous call per method.
type Client struct {
	builder *RequestBuilder
	caller  *Caller
	log     logger.Logger
}

// New wires a client from a request builder and an async transport.
func New(builder *RequestBuilder, transport Transport, log logger.Logger) *Client {
	c := &Client{
		builder: builder,
		caller:  NewCaller(transport),
		log:     logger.Ensure(log),
	}
	c.log.DebugObj("artifacts client ready", "base_url", builder.BaseURL())
	return c
}

// Status fetches and decodes the server status. When the server answered
// but the body did not decode, the result still carries the metadata and
// the error is a *DecodeError.
func (c *Client) Status(ctx context.Context) (StatusResult, error) {
	var out StatusResult
	req := c.builder.Build(StatusEndpoint{})

	err := c.caller.Call(ctx, req, func(resp httpclient.Response) error {
		out.Meta = metaOf(resp)
		c.log.DebugObj("status response received", "response_meta", out.Meta)

		info, err := DecodeStatus(resp.Body())
		if err != nil {
			return err
		}
		out.Status = info
		return nil
	})
	return out, err
}

// Act performs a character action. payload, when non-nil, is sent as the
// JSON body. The response body is returned undecoded. An action outside
// the known set fails with ErrUnknownAction before anything is sent.
func (c *Client) Act(ctx context.Context, character domain.Character, action domain.Action, payload any) (ResponseMeta, []byte, error) {
	var (
		meta ResponseMeta
		body []byte
	)
	if !action.Valid() {
		return meta, nil, fmt.Errorf("%w %q", ErrUnknownAction, action)
	}
	req := c.builder.Build(ActionEndpoint{Character: character, Action: action, Payload: payload})

	err := c.caller.Call(ctx, req, func(resp httpclient.Response) error {
		meta = metaOf(resp)
		body = resp.Body()
		c.log.DebugObj("action response received", "action_meta", map[string]any{
			"character":   character.Name,
			"action":      string(action),
			"status_code": meta.StatusCode,
		})
		return nil
	})
	return meta, body, err
}
