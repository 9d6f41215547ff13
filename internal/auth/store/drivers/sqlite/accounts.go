package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/store"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the repo works inside and
// outside transactions.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, full_name, email, password_hash, role, is_active, is_pending, created_at, updated_at`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	isActive, isPending := a.Status.Flags()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.FullName,
		strings.ToLower(a.Email),
		a.PasswordHash,
		a.Role.String(),
		isActive,
		isPending,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = ?`, strings.ToLower(email))
	return scanAccount(row)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *accountsRepo) ListAccountsByStatus(ctx context.Context, status domain.Status) ([]domain.Account, error) {
	isActive, isPending := status.Flags()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE is_active = ? AND is_pending = ?
		ORDER BY created_at ASC, id ASC`, isActive, isPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *accountsRepo) UpdateAccountStatus(ctx context.Context, id string, status domain.Status) error {
	isActive, isPending := status.Flags()

	// Both flags land in one UPDATE so no reader ever sees a torn state.
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET is_active = ?, is_pending = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, isActive, isPending, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a                   domain.Account
		role                string
		isActive, isPending bool
	)
	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.Email,
		&a.PasswordHash,
		&role,
		&isActive,
		&isPending,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.Role, err = domain.ParseRole(role)
	if err != nil {
		return domain.Account{}, err
	}
	a.Status = domain.StatusFromFlags(isActive, isPending)
	return a, nil
}

func collectAccounts(rows *sql.Rows) ([]domain.Account, error) {
	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
