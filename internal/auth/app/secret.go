package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/praetor-app/praetor/pkg/cryptox"
)

// loadOrGenerateSecret resolves the HS256 signing secret. AUTH_TOKEN_SECRET
// wins when set; otherwise a secret is generated once and persisted next to
// the database so tokens survive restarts.
func loadOrGenerateSecret(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.TokenSecret != "" {
		return []byte(cfg.TokenSecret), nil
	}

	secretFile := filepath.Clean(cfg.SecretFile)
	if data, err := os.ReadFile(secretFile); err == nil && len(data) > 0 {
		return data, nil
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing secret: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(secretFile), 0750); err != nil {
		return nil, err
	}
	if err := os.WriteFile(secretFile, []byte(secret), 0600); err != nil {
		return nil, fmt.Errorf("failed to persist signing secret: %w", err)
	}

	logger.Info("generated new signing secret", "path", secretFile)
	return []byte(secret), nil
}
