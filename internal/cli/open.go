package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/gophvault/internal/config"
	"github.com/iudanet/gophvault/internal/crypto"
	"github.com/iudanet/gophvault/internal/storage"
	"github.com/iudanet/gophvault/internal/storage/boltdb"
	"github.com/iudanet/gophvault/internal/storage/sqlite"
	"github.com/iudanet/gophvault/internal/vault"
)

// OpenVault loads or creates the encryption key, opens the configured storage
// backend and builds a vault over it. The caller closes the returned storage.
func OpenVault(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*vault.Vault, storage.Storage, error) {
	keys, err := crypto.EnsureKey(cfg.KeyFile)
	if err != nil {
		return nil, nil, err
	}

	var store storage.Storage
	switch cfg.Backend {
	case config.BackendBolt:
		store, err = boltdb.New(ctx, cfg.DB)
	case config.BackendSQLite:
		store, err = sqlite.New(ctx, cfg.DB)
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.DebugContext(ctx, "vault opened",
		slog.String("backend", cfg.Backend),
		slog.String("db", cfg.DB),
		slog.String("key_file", cfg.KeyFile),
	)

	return vault.New(keys, store, logger), store, nil
}
