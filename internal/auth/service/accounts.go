package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/internal/auth/store"
	"github.com/praetor-app/praetor/pkg/cryptox"
	"github.com/praetor-app/praetor/pkg/idx"
	"github.com/praetor-app/praetor/pkg/jwtx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrApprovalPending    = errors.New("account awaiting approval")
	ErrAccountDisabled    = errors.New("account deactivated")
)

type AccountService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// Register creates a new pending member account. Pending accounts cannot log
// in until an administrator approves them.
func (s *AccountService) Register(ctx context.Context, fullName, email, password, confirm string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	if password != confirm {
		return domain.Account{}, ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := time.Now().UTC()
	acc := domain.Account{
		ID:           idx.New().String(),
		FullName:     strings.TrimSpace(fullName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         domain.RoleMember,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, ErrEmailTaken
		}
		l.Error("failed to create account", slog.Any("error", err))
		return domain.Account{}, err
	}

	l.Info("account registered",
		slog.String("account_id", acc.ID),
		slog.String("email", acc.Email),
	)
	return acc, nil
}

// Authenticate verifies credentials and issues a session token. The error
// distinguishes unknown email, wrong password and not-yet-approved accounts
// so the HTTP layer can map them to 404/401/403.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (string, domain.Account, error) {
	l := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Account{}, ErrAccountNotFound
		}
		return "", domain.Account{}, err
	}

	if err := cryptox.VerifyPassword(password, acc.PasswordHash); err != nil {
		l.Warn("login failed", slog.String("account_id", acc.ID))
		return "", domain.Account{}, ErrInvalidCredentials
	}

	// Credentials are checked before status so a pending response never
	// leaks whether a guessed password was right for an active account.
	switch acc.Status {
	case domain.StatusPending:
		return "", domain.Account{}, ErrApprovalPending
	case domain.StatusInactive:
		return "", domain.Account{}, ErrAccountDisabled
	}

	token, err := s.Codec.Issue(acc.ID, acc.Role.String(), time.Now())
	if err != nil {
		l.Error("failed to issue token", slog.Any("error", err))
		return "", domain.Account{}, err
	}

	l.Info("login succeeded", slog.String("account_id", acc.ID))
	return token, acc, nil
}

// GetAccountByID fetches an account by id.
func (s *AccountService) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return acc, nil
}
