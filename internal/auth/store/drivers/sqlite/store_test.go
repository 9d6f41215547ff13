package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/store"
	"github.com/praetor-app/praetor/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestAccount(status domain.Status) domain.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Account{
		ID:           idx.New().String(),
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		Role:         domain.RoleMember,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountsCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc := newTestAccount(domain.StatusPending)
	require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

	t.Run("by id", func(t *testing.T) {
		got, err := s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, acc.ID, got.ID)
		require.Equal(t, domain.StatusPending, got.Status)
		require.Equal(t, domain.RoleMember, got.Role)
	})

	t.Run("by email is case-insensitive", func(t *testing.T) {
		got, err := s.Accounts().GetAccountByEmail(ctx, "ADA@Example.COM")
		require.NoError(t, err)
		require.Equal(t, acc.ID, got.ID)
	})

	t.Run("missing id maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Accounts().GetAccountByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		dup := newTestAccount(domain.StatusPending)
		dup.Email = "Ada@example.com" // differs only in case
		err := s.Accounts().CreateAccount(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestAccountsUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc := newTestAccount(domain.StatusPending)
	require.NoError(t, s.Accounts().CreateAccount(ctx, acc))

	t.Run("pending to active", func(t *testing.T) {
		require.NoError(t, s.Accounts().UpdateAccountStatus(ctx, acc.ID, domain.StatusActive))

		got, err := s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, s.Accounts().UpdateAccountStatus(ctx, acc.ID, domain.StatusActive))

		got, err := s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("active to inactive", func(t *testing.T) {
		require.NoError(t, s.Accounts().UpdateAccountStatus(ctx, acc.ID, domain.StatusInactive))

		got, err := s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusInactive, got.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := s.Accounts().UpdateAccountStatus(ctx, idx.New().String(), domain.StatusActive)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAccountsListing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mk := func(email string, status domain.Status) domain.Account {
		acc := newTestAccount(status)
		acc.ID = idx.New().String()
		acc.Email = email
		require.NoError(t, s.Accounts().CreateAccount(ctx, acc))
		return acc
	}

	mk("one@example.com", domain.StatusPending)
	mk("two@example.com", domain.StatusActive)
	mk("three@example.com", domain.StatusPending)
	mk("four@example.com", domain.StatusInactive)

	t.Run("list all", func(t *testing.T) {
		all, err := s.Accounts().ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
	})

	t.Run("filter pending", func(t *testing.T) {
		pending, err := s.Accounts().ListAccountsByStatus(ctx, domain.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		for _, a := range pending {
			require.Equal(t, domain.StatusPending, a.Status)
		}
	})

	t.Run("filter inactive", func(t *testing.T) {
		inactive, err := s.Accounts().ListAccountsByStatus(ctx, domain.StatusInactive)
		require.NoError(t, err)
		require.Len(t, inactive, 1)
	})
}

func TestAccountsIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.Accounts().CreateAccount(ctx, newTestAccount(domain.StatusActive)))

	empty, err = s.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestWithTx(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc := newTestAccount(domain.StatusPending)

	t.Run("rolls back on error", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Accounts().CreateAccount(ctx, acc); err != nil {
				return err
			}
			return context.Canceled // force rollback
		})
		require.Error(t, err)

		_, err = s.Accounts().GetAccountByID(ctx, acc.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commits on success", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Accounts().CreateAccount(ctx, acc)
		})
		require.NoError(t, err)

		_, err = s.Accounts().GetAccountByID(ctx, acc.ID)
		require.NoError(t, err)
	})
}
