package domain

import "fmt"

// Role is the authorization level carried inside session tokens. It is a
// snapshot at issuance: changing an account's role does not rewrite tokens
// already in the wild.
type Role string

const (
	RoleMember        Role = "member"
	RoleAdministrator Role = "administrator"
)

// ParseRole validates a role string from storage or the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleAdministrator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string { return string(r) }
