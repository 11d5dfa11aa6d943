// Package httpclient wraps resty for the outbound calls of the application
package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrUnexpectedStatus is wrapped by CheckResponse for every non-2xx response
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxErrorBody bounds how much of an error response body ends up in an error message
const maxErrorBody = 256

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client with its own connection pool.
// No retries and no timeout are configured.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}

// CheckResponse converts a non-2xx response into an error carrying the status and a trimmed body
func CheckResponse(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
}
