package vault

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/gophvault/internal/backup"
)

// Export writes every credential in the backup format and returns the count.
// Passwords are written encrypted.
func (v *Vault) Export(ctx context.Context, w io.Writer) (int, error) {
	creds, err := v.List(ctx)
	if err != nil {
		return 0, err
	}

	if err := backup.Export(w, creds); err != nil {
		return 0, err
	}

	return len(creds), nil
}

// Import appends every record of a backup in one transaction. A malformed line
// aborts the import before anything is stored.
func (v *Vault) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := v.auth.requireVerified(); err != nil {
		return 0, err
	}

	creds, err := backup.Import(r)
	if err != nil {
		return 0, err
	}

	n, err := v.store.ImportCredentials(ctx, creds)
	if err != nil {
		return 0, fmt.Errorf("failed to import credentials: %w", err)
	}

	v.log().InfoContext(ctx, "credentials imported", slog.Int("count", n))

	return n, nil
}

// BackupToFile exports the vault to path with mode 0600. The backup is written
// to a temporary file in the same directory and renamed over path only on
// success, so a failed backup leaves an existing file untouched.
func (v *Vault) BackupToFile(ctx context.Context, path string) (int, error) {
	creds, err := v.List(ctx)
	if err != nil {
		return 0, err
	}

	// CreateTemp создает файл с правами 0600
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create backup file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	err = backup.Export(tmp, creds)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close backup file: %w", closeErr)
	}
	if err != nil {
		return 0, err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("failed to replace backup file: %w", err)
	}

	v.log().InfoContext(ctx, "backup written", slog.String("path", path), slog.Int("count", len(creds)))

	return len(creds), nil
}

// RestoreFromFile imports the backup stored at path.
func (v *Vault) RestoreFromFile(ctx context.Context, path string) (int, error) {
	if err := v.auth.requireVerified(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	return v.Import(ctx, f)
}
