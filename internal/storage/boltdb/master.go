package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
)

var masterKey = []byte("current")

// GetMasterPassword retrieves the master password record
func (s *Storage) GetMasterPassword(ctx context.Context) (*models.MasterPassword, error) {
	var mp *models.MasterPassword

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMaster)
		if bucket == nil {
			return fmt.Errorf("master bucket not found")
		}

		data := bucket.Get(masterKey)
		if data == nil {
			return storage.ErrMasterPasswordNotFound
		}

		mp = &models.MasterPassword{}
		if err := json.Unmarshal(data, mp); err != nil {
			return fmt.Errorf("failed to unmarshal master password: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return mp, nil
}

// CreateMasterPassword stores the master password record if none exists
func (s *Storage) CreateMasterPassword(ctx context.Context, hash []byte) error {
	return s.putMaster(hash, false)
}

// ReplaceMasterPassword stores the master password record, overwriting any existing one
func (s *Storage) ReplaceMasterPassword(ctx context.Context, hash []byte) error {
	return s.putMaster(hash, true)
}

func (s *Storage) putMaster(hash []byte, replace bool) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMaster)
		if bucket == nil {
			return fmt.Errorf("master bucket not found")
		}

		if !replace && bucket.Get(masterKey) != nil {
			return storage.ErrMasterPasswordExists
		}

		data, err := json.Marshal(&models.MasterPassword{
			ID:           models.MasterPasswordID,
			PasswordHash: hash,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal master password: %w", err)
		}

		if err := bucket.Put(masterKey, data); err != nil {
			return fmt.Errorf("failed to save master password: %w", err)
		}

		return nil
	})
}
