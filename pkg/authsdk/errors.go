package authsdk

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether the server rejected the session token.
func (e *APIError) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }

// parseErrorResponse decodes the JSON error body the service writes for every
// non-2xx status. Falls back to the status text for unexpected payloads.
func parseErrorResponse(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
