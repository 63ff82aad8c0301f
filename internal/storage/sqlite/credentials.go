package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
)

// AddCredential inserts a new credential and returns the assigned ID
func (s *Storage) AddCredential(ctx context.Context, cred *models.Credential) (int64, error) {
	const query = `INSERT INTO credentials (website, username, password) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, cred.Website, cred.Username, cred.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to insert credential: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// FindCredentials returns credentials for the website ordered by ID
func (s *Storage) FindCredentials(ctx context.Context, website string) ([]models.Credential, error) {
	const query = `
		SELECT id, website, username, password
		FROM credentials
		WHERE website = ?
		ORDER BY id
	`

	return s.queryCredentials(ctx, query, website)
}

// FirstCredential returns the credential for the website with the lowest ID
func (s *Storage) FirstCredential(ctx context.Context, website string) (*models.Credential, error) {
	const query = `
		SELECT id, website, username, password
		FROM credentials
		WHERE website = ?
		ORDER BY id
		LIMIT 1
	`

	cred := &models.Credential{}
	err := s.db.QueryRowContext(ctx, query, website).Scan(
		&cred.ID,
		&cred.Website,
		&cred.Username,
		&cred.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return cred, nil
}

// UpdateCredential updates username and password of a single credential by ID
func (s *Storage) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	const query = `UPDATE credentials SET username = ?, password = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, cred.Username, cred.Password, cred.ID)
	if err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCredentialNotFound
	}

	return nil
}

// DeleteCredentials deletes every credential for the website
func (s *Storage) DeleteCredentials(ctx context.Context, website string) (int64, error) {
	const query = `DELETE FROM credentials WHERE website = ?`

	result, err := s.db.ExecContext(ctx, query, website)
	if err != nil {
		return 0, fmt.Errorf("failed to delete credentials: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// ListCredentials returns every credential ordered by ID
func (s *Storage) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	const query = `SELECT id, website, username, password FROM credentials ORDER BY id`

	return s.queryCredentials(ctx, query)
}

// ImportCredentials inserts all credentials in one transaction
func (s *Storage) ImportCredentials(ctx context.Context, creds []models.Credential) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO credentials (website, username, password) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range creds {
		if _, err := stmt.ExecContext(ctx, creds[i].Website, creds[i].Username, creds[i].Password); err != nil {
			return 0, fmt.Errorf("failed to insert credential %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(creds), nil
}

func (s *Storage) queryCredentials(ctx context.Context, query string, args ...any) ([]models.Credential, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	var creds []models.Credential
	for rows.Next() {
		var cred models.Credential
		if err := rows.Scan(&cred.ID, &cred.Website, &cred.Username, &cred.Password); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, cred)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return creds, nil
}
