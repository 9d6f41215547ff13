package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/praetor-app/praetor/internal/auth/domain"
	"github.com/praetor-app/praetor/pkg/cryptox"
	"github.com/praetor-app/praetor/pkg/idx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

// BootstrapService seeds the first administrator. Registration only ever
// produces pending members, so an empty directory would otherwise have nobody
// able to approve anyone.
type BootstrapService struct {
	Accounts *AccountService

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// SeedAdmin creates an active administrator when the directory is empty and
// credentials are configured. Safe to call on every startup.
func (s *BootstrapService) SeedAdmin(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if s.AdminEmail == "" || s.AdminPassword == "" {
		return nil
	}

	empty, err := s.Accounts.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.AdminPassword)
	if err != nil {
		return err
	}

	name := s.AdminName
	if name == "" {
		name = "Administrator"
	}

	now := time.Now().UTC()
	acc := domain.Account{
		ID:           idx.New().String(),
		FullName:     name,
		Email:        strings.ToLower(strings.TrimSpace(s.AdminEmail)),
		PasswordHash: hash,
		Role:         domain.RoleAdministrator,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Accounts.Store.Accounts().CreateAccount(ctx, acc); err != nil {
		return err
	}

	l.Info("seeded administrator account",
		slog.String("account_id", acc.ID),
		slog.String("email", acc.Email),
	)
	return nil
}
