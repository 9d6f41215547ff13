package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/store/drivers/sqlite"
	"github.com/praetor-app/praetor/pkg/cryptox"
	"github.com/praetor-app/praetor/pkg/jwtx"
)

func newTestServices(t *testing.T) (*AccountService, *ApprovalService) {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	codec, err := jwtx.NewCodec([]byte("test-secret-test-secret-test-secret"), "praetor-test", 15*time.Minute)
	require.NoError(t, err)

	return &AccountService{Store: s, Codec: codec}, &ApprovalService{Store: s}
}

func TestRegister(t *testing.T) {
	accounts, _ := newTestServices(t)
	ctx := context.Background()

	t.Run("creates pending member", func(t *testing.T) {
		acc, err := accounts.Register(ctx, "Ada Lovelace", "Ada@Example.com", "hunter22", "hunter22")
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, acc.Status)
		require.Equal(t, domain.RoleMember, acc.Role)
		require.Equal(t, "ada@example.com", acc.Email)
		require.NotEmpty(t, acc.ID)
	})

	t.Run("rejects password mismatch", func(t *testing.T) {
		_, err := accounts.Register(ctx, "Bob", "bob@example.com", "hunter22", "hunter23")
		require.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := accounts.Register(ctx, "Ada Again", "ada@example.com", "hunter22", "hunter22")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	accounts, approvals := newTestServices(t)
	ctx := context.Background()

	acc, err := accounts.Register(ctx, "Ada Lovelace", "ada@example.com", "hunter22", "hunter22")
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := accounts.Authenticate(ctx, "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("pending account refused even with right password", func(t *testing.T) {
		_, _, err := accounts.Authenticate(ctx, "ada@example.com", "hunter22")
		require.ErrorIs(t, err, ErrApprovalPending)
	})

	t.Run("wrong password on pending account reports credentials first", func(t *testing.T) {
		_, _, err := accounts.Authenticate(ctx, "ada@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	_, err = approvals.SetStatus(ctx, acc.ID, true)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := accounts.Authenticate(ctx, "ada@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success issues verifiable token", func(t *testing.T) {
		token, got, err := accounts.Authenticate(ctx, "ada@example.com", "hunter22")
		require.NoError(t, err)
		require.Equal(t, acc.ID, got.ID)

		ident, err := accounts.Codec.Verify(token, time.Now())
		require.NoError(t, err)
		require.Equal(t, acc.ID, ident.AccountID)
		require.Equal(t, "member", ident.Role)
	})

	t.Run("deactivated account refused", func(t *testing.T) {
		_, err := approvals.SetStatus(ctx, acc.ID, false)
		require.NoError(t, err)

		_, _, err = accounts.Authenticate(ctx, "ada@example.com", "hunter22")
		require.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestSetStatus(t *testing.T) {
	accounts, approvals := newTestServices(t)
	ctx := context.Background()

	acc, err := accounts.Register(ctx, "Ada Lovelace", "ada@example.com", "hunter22", "hunter22")
	require.NoError(t, err)

	t.Run("approve clears pending", func(t *testing.T) {
		got, err := approvals.SetStatus(ctx, acc.ID, true)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("idempotent", func(t *testing.T) {
		got, err := approvals.SetStatus(ctx, acc.ID, true)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("reject yields inactive, never pending", func(t *testing.T) {
		got, err := approvals.SetStatus(ctx, acc.ID, false)
		require.NoError(t, err)
		require.Equal(t, domain.StatusInactive, got.Status)

		isActive, isPending := got.Status.Flags()
		require.False(t, isActive)
		require.False(t, isPending)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := approvals.SetStatus(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", true)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestListPending(t *testing.T) {
	accounts, approvals := newTestServices(t)
	ctx := context.Background()

	a1, err := accounts.Register(ctx, "One", "one@example.com", "hunter22", "hunter22")
	require.NoError(t, err)
	_, err = accounts.Register(ctx, "Two", "two@example.com", "hunter22", "hunter22")
	require.NoError(t, err)

	pending, err := approvals.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	_, err = approvals.SetStatus(ctx, a1.ID, true)
	require.NoError(t, err)

	pending, err = approvals.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "two@example.com", pending[0].Email)

	all, err := approvals.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds empty directory", func(t *testing.T) {
		accounts, _ := newTestServices(t)
		boot := &BootstrapService{
			Accounts:      accounts,
			AdminEmail:    "admin@example.com",
			AdminPassword: "hunter22",
		}
		require.NoError(t, boot.SeedAdmin(ctx))

		token, acc, err := accounts.Authenticate(ctx, "admin@example.com", "hunter22")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, domain.RoleAdministrator, acc.Role)
		require.Equal(t, domain.StatusActive, acc.Status)
	})

	t.Run("skips non-empty directory", func(t *testing.T) {
		accounts, _ := newTestServices(t)
		_, err := accounts.Register(ctx, "Ada", "ada@example.com", "hunter22", "hunter22")
		require.NoError(t, err)

		boot := &BootstrapService{
			Accounts:      accounts,
			AdminEmail:    "admin@example.com",
			AdminPassword: "hunter22",
		}
		require.NoError(t, boot.SeedAdmin(ctx))

		_, _, err = accounts.Authenticate(ctx, "admin@example.com", "hunter22")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("skips when unconfigured", func(t *testing.T) {
		accounts, _ := newTestServices(t)
		boot := &BootstrapService{Accounts: accounts}
		require.NoError(t, boot.SeedAdmin(ctx))

		empty, err := accounts.Store.Accounts().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})
}
