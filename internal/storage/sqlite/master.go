package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
)

// GetMasterPassword retrieves the master password record
func (s *Storage) GetMasterPassword(ctx context.Context) (*models.MasterPassword, error) {
	const query = `SELECT id, password_hash FROM master_password WHERE id = ?`

	mp := &models.MasterPassword{}
	err := s.db.QueryRowContext(ctx, query, models.MasterPasswordID).Scan(&mp.ID, &mp.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMasterPasswordNotFound
		}
		return nil, fmt.Errorf("failed to get master password: %w", err)
	}

	return mp, nil
}

// CreateMasterPassword inserts the master password record if none exists
func (s *Storage) CreateMasterPassword(ctx context.Context, hash []byte) error {
	const query = `
		INSERT INTO master_password (id, password_hash)
		SELECT ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM master_password)
	`

	result, err := s.db.ExecContext(ctx, query, models.MasterPasswordID, hash)
	if err != nil {
		return fmt.Errorf("failed to insert master password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrMasterPasswordExists
	}

	return nil
}

// ReplaceMasterPassword upserts the master password record
func (s *Storage) ReplaceMasterPassword(ctx context.Context, hash []byte) error {
	const query = `
		INSERT INTO master_password (id, password_hash) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET password_hash = excluded.password_hash
	`

	if _, err := s.db.ExecContext(ctx, query, models.MasterPasswordID, hash); err != nil {
		return fmt.Errorf("failed to replace master password: %w", err)
	}

	return nil
}
