package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/store"
	"github.com/praetor-app/praetor/pkg/slogx"
)

// ApprovalService implements the administrator side of the pending-account
// workflow: list registrations and flip them active or inactive.
type ApprovalService struct {
	Store store.Store
}

// ListPending returns accounts awaiting approval.
func (s *ApprovalService) ListPending(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccountsByStatus(ctx, domain.StatusPending)
}

// ListAll returns the whole directory for the admin dashboard.
func (s *ApprovalService) ListAll(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().ListAccounts(ctx)
}

// SetStatus resolves an account's lifecycle state. The pending flag is always
// cleared: the account becomes active or inactive, nothing else. Idempotent.
// Tokens already issued to the account keep their role snapshot until expiry.
func (s *ApprovalService) SetStatus(ctx context.Context, id string, activate bool) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	status := domain.StatusInactive
	if activate {
		status = domain.StatusActive
	}

	var acc domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdateAccountStatus(ctx, id, status); err != nil {
			return err
		}
		var err error
		acc, err = tx.Accounts().GetAccountByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	l.Info("account status updated",
		slog.String("account_id", id),
		slog.String("status", status.String()),
	)
	return acc, nil
}
