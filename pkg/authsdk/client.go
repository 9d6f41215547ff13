package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the account service. Unauthenticated calls (Register,
// Login, health probes) go straight out; guarded calls ride the Session's
// cached token and invalidate the session when the server answers 401.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
}

// NewSDKClient creates a client whose session cache lives in the given
// storage. Pass NewMemStore() when persistence is not wanted.
func NewSDKClient(baseURL string, storage Storage) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Session: NewSession(storage),
	}
}

// Register submits a new registration. The resulting account is pending and
// cannot log in until approved.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (AccountSummary, error) {
	var out AccountSummary
	err := c.postJSON(ctx, "/v1/auth/register", req, &out, http.StatusCreated)
	return out, err
}

// Login authenticates and, on success, stores the token and account summary
// in the session cache.
func (c *SDKClient) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.postJSON(ctx, "/v1/auth/login", LoginRequest{Email: email, Password: password}, &out, http.StatusOK)
	if err != nil {
		return LoginResponse{}, err
	}

	if err := c.Session.Login(out.Account, out.Token); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Logout clears the session cache. Purely client-side; the token itself
// simply expires server-side.
func (c *SDKClient) Logout() error {
	return c.Session.Logout()
}

// Profile fetches the authenticated account's profile.
func (c *SDKClient) Profile(ctx context.Context) (ProfileResponse, error) {
	var out ProfileResponse
	err := c.getAuthed(ctx, "/v1/profile", &out)
	return out, err
}

// ListUsers returns the account directory. Admin only.
func (c *SDKClient) ListUsers(ctx context.Context) ([]AccountSummary, error) {
	var out []AccountSummary
	err := c.getAuthed(ctx, "/v1/admin/users", &out)
	return out, err
}

// ListPendingUsers returns only the accounts awaiting approval. Admin only.
func (c *SDKClient) ListPendingUsers(ctx context.Context) ([]AccountSummary, error) {
	var out []AccountSummary
	err := c.getAuthed(ctx, "/v1/admin/users?state=pending", &out)
	return out, err
}

// SetUserStatus approves (activate=true) or deactivates an account and
// returns the updated record. Admin only.
func (c *SDKClient) SetUserStatus(ctx context.Context, id string, activate bool) (AccountSummary, error) {
	req := StatusUpdateRequest{IsActive: activate, IsPending: false}

	var out AccountSummary
	err := c.doAuthJSON(ctx, http.MethodPut, "/v1/admin/users/"+id+"/status", req, &out, http.StatusOK)
	return out, err
}

// GetLiveness probes /livez.
func (c *SDKClient) GetLiveness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return HealthResponse{}, err
	}
	err = decodeJSON(resp, &out, http.StatusOK)
	return out, err
}

// GetReadiness probes /readyz.
func (c *SDKClient) GetReadiness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return HealthResponse{}, err
	}
	err = decodeJSON(resp, &out, http.StatusOK)
	return out, err
}
