package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"connector-hub/internal/core/domain"
)

const maxErrorBody = 4 << 10

// Client is the JSON-over-HTTP helper adapters use to call provider APIs.
// It maps responses onto the domain error taxonomy: 401/403 become
// *domain.AuthenticationError, transport failures, 429 and 5xx become
// *domain.ConnectionError.
type Client struct {
	provider domain.ProviderType
	http     *http.Client
}

// NewClient returns a client bounded by timeout. A nil httpClient uses a new
// http.Client.
func NewClient(provider domain.ProviderType, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{provider: provider, http: httpClient}
}

// HTTP exposes the underlying client, e.g. for oauth2 exchanges.
func (c *Client) HTTP() *http.Client { return c.http }

// Request describes one API call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any // JSON encoded when set
}

// Do sends req and decodes a 2xx JSON response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) (http.Header, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.ConnectionError{Provider: c.provider, Err: err}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return resp.Header, err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, fmt.Errorf("decode %s response: %w", c.provider, err)
	}
	return resp.Header, nil
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthenticationError{Provider: c.provider, Reason: statusErr.Error()}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &domain.ConnectionError{Provider: c.provider, Err: statusErr}
	default:
		return statusErr
	}
}

// StatusError is a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Transient is false: other 4xx responses will not succeed on retry.
func (e *StatusError) Transient() bool { return false }

// Ping issues req and reports whether it succeeded. It backs
// ProviderAdapter.TestConnection, which must not surface errors.
func (c *Client) Ping(ctx context.Context, req Request) bool {
	_, err := c.Do(ctx, req, nil)
	return err == nil
}

// IsAuthError reports whether err carries an authentication failure.
func IsAuthError(err error) bool {
	var authErr *domain.AuthenticationError
	return errors.As(err, &authErr)
}
