package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotAuthenticated is returned for guarded calls on a logged-out session.
var ErrNotAuthenticated = errors.New("authsdk: not authenticated")

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
// This is for unauthenticated requests (no Authorization header).
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doAuthRequest performs a request with the session's bearer token attached.
// A 401 answer invalidates the session before the error is returned, so the
// next guard evaluation redirects to the entry point.
func (c *SDKClient) doAuthRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	token := c.Session.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Authorization"] = "Bearer " + token

	resp, err := c.doRequest(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.Session.Invalidate()
	}
	return resp, nil
}

// postJSON sends an unauthenticated JSON POST and decodes the answer.
func (c *SDKClient) postJSON(ctx context.Context, path string, body, target any, expectedStatus int) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(raw), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// getAuthed sends an authenticated GET and decodes the answer.
func (c *SDKClient) getAuthed(ctx context.Context, path string, target any) error {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

// doAuthJSON sends an authenticated JSON request and decodes the answer.
func (c *SDKClient) doAuthJSON(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := c.doAuthRequest(ctx, method, path, bytes.NewReader(raw), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expectedStatus)
}

// decodeJSON decodes a JSON response into the target. Non-expected statuses
// come back as *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp)
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
