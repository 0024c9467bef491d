package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const DEFAULT_TIMEOUT = 10 * time.Second

// HTTPClient holds the base URL and HTTP client configuration shared by the API clients.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a client for baseURL; a non-positive timeout means DEFAULT_TIMEOUT.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned by Request for a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// Do sends body as JSON (when not nil) and returns the raw status code and response body.
// Non-2xx statuses are not errors here.
func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, query url.Values, body any) (int, []byte, error) {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	u := c.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, requestBody)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return res.StatusCode, resBody, nil
}

// Request makes an HTTP request and decodes a 2xx JSON response into response.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, query url.Values, body any, response any) error {
	status, resBody, err := c.Do(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &StatusError{StatusCode: status, Status: fmt.Sprintf("%d %s", status, http.StatusText(status)), Body: resBody}
	}
	if response != nil {
		return json.Unmarshal(resBody, response)
	}
	return nil
}
