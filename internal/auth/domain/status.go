package domain

import "fmt"

// Status is the account lifecycle state. Internally it is a single tagged
// value; the is_active/is_pending boolean pair the schema and the API carry
// exists only at those boundaries, which keeps the contradictory
// pending-and-active combination unrepresentable here.
type Status string

const (
	// StatusPending is the state of every fresh registration, awaiting
	// administrator approval. Pending accounts cannot log in.
	StatusPending Status = "pending"

	// StatusActive accounts can log in.
	StatusActive Status = "active"

	// StatusInactive accounts were reviewed and switched off. They cannot
	// log in until re-activated.
	StatusInactive Status = "inactive"
)

// StatusFromFlags decodes the boolean pair used by the schema and the admin
// API. Pending wins over active so a malformed row degrades to the safe state.
func StatusFromFlags(isActive, isPending bool) Status {
	switch {
	case isPending:
		return StatusPending
	case isActive:
		return StatusActive
	default:
		return StatusInactive
	}
}

// Flags encodes the status back into the (is_active, is_pending) pair.
func (s Status) Flags() (isActive, isPending bool) {
	switch s {
	case StatusActive:
		return true, false
	case StatusPending:
		return false, true
	default:
		return false, false
	}
}

// ParseStatus validates a status string from storage.
func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusActive, StatusInactive:
		return Status(v), nil
	}
	return "", fmt.Errorf("unknown status %q", v)
}

func (s Status) String() string { return string(s) }
