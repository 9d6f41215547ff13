package store

import (
	"context"
	"errors"

	"github.com/praetor-app/praetor/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by the app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks an account up by email, case-insensitively.
	// Used during login.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account ordered by creation date (oldest first).
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListAccountsByStatus returns accounts in the given state, same ordering.
	ListAccountsByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error)

	// UpdateAccountStatus writes the new status as a single UPDATE so the
	// activity and pending flags can never be observed half-written.
	UpdateAccountStatus(ctx context.Context, id string, status domain.Status) error

	// IsEmpty returns true if there are no accounts. Used for admin seeding.
	IsEmpty(ctx context.Context) (bool, error)
}
