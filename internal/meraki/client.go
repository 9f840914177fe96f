package meraki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// perPage is the page size for paginated listing endpoints.
const perPage = 1000

// Client talks to the Meraki dashboard REST API. All requests go through a
// single get choke point so retry or rate limiting could be added in one
// place without touching callers.
type Client struct {
	http *resty.Client
}

// NewClient builds a dashboard client for the given base URL and API key.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Cisco-Meraki-API-Key", apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))

	return &Client{http: rc}
}

// get performs one authenticated GET and decodes the JSON body into out.
// Unknown fields are ignored; a body that does not decode is surfaced as an
// APIError rather than propagated as a malformed structure.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return &APIError{
				StatusCode: resp.StatusCode(),
				Body:       string(resp.Body()),
				Message:    fmt.Sprintf("malformed response from %s: %v", path, err),
			}
		}
	}
	return nil
}
