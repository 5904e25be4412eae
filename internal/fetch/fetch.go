package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Getter performs an HTTP GET expecting a JSON body and decodes it into v.
// It is the single transport capability the lookup services depend on;
// tests substitute a fake to count or forbid network calls.
type Getter interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// StatusError reports a non-2xx response from an upstream API.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// IsStatusError reports whether err carries a non-2xx upstream response.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Client is the default Getter backed by net/http.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a Client with a bounded total request timeout. The
// Wikimedia APIs require an identifying User-Agent on every request.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		userAgent: userAgent,
	}
}

// GetJSON fetches url and unmarshals the response body into v. A non-2xx
// status is returned as a *StatusError so callers can distinguish upstream
// refusal from decode or network failure.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errors.Wrap(err, "failed to unmarshal response")
	}

	return nil
}
