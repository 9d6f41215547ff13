// Package authsdk is the Go client SDK for the account service. It carries
// the wire types shared with the server, an HTTP client, a persistent
// session cache and a route guard for front-end shells.
package authsdk

// AccountSummary is the public view of an account. The lifecycle state rides
// as the is_active/is_pending pair on the wire.
type AccountSummary struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	IsPending bool   `json:"is_pending"`
}

// IsAdministrator reports whether the summary carries the administrator role.
func (a AccountSummary) IsAdministrator() bool {
	return a.Role == "administrator"
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token   string         `json:"token"`
	Account AccountSummary `json:"account"`
}

// ProfileResponse is returned by GET /v1/profile.
type ProfileResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// StatusUpdateRequest is the body of PUT /v1/admin/users/{id}/status. The
// server always forces is_pending to false: a reviewed account is either
// active or inactive.
type StatusUpdateRequest struct {
	IsActive  bool `json:"is_active"`
	IsPending bool `json:"is_pending"`
}

// HealthChecks reports per-dependency health on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
