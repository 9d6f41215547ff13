package domain

import "time"

// Account is a registered user of the service. PasswordHash is an Argon2id
// PHC string and is never exposed over the API.
type Account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdministrator reports whether the account holds the administrator role.
func (a Account) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}
