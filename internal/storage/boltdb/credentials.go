package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophvault/internal/models"
	"github.com/iudanet/gophvault/internal/storage"
)

// AddCredential stores a new credential under the next bucket sequence
func (s *Storage) AddCredential(ctx context.Context, cred *models.Credential) (int64, error) {
	var id int64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		var err error
		id, err = putNew(bucket, *cred)
		return err
	})

	if err != nil {
		return 0, err
	}

	return id, nil
}

// FindCredentials returns credentials for the website ordered by ID
func (s *Storage) FindCredentials(ctx context.Context, website string) ([]models.Credential, error) {
	return s.scan(func(c *models.Credential) bool { return c.Website == website }, 0)
}

// FirstCredential returns the credential for the website with the lowest ID
func (s *Storage) FirstCredential(ctx context.Context, website string) (*models.Credential, error) {
	creds, err := s.scan(func(c *models.Credential) bool { return c.Website == website }, 1)
	if err != nil {
		return nil, err
	}

	if len(creds) == 0 {
		return nil, storage.ErrCredentialNotFound
	}

	return &creds[0], nil
}

// UpdateCredential updates username and password of a single credential by ID
func (s *Storage) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		key := itob(cred.ID)
		data := bucket.Get(key)
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		var stored models.Credential
		if err := json.Unmarshal(data, &stored); err != nil {
			return fmt.Errorf("failed to unmarshal credential: %w", err)
		}

		// website не меняется, как и в SQL-реализации
		stored.Username = cred.Username
		stored.Password = cred.Password

		updated, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("failed to marshal credential: %w", err)
		}

		if err := bucket.Put(key, updated); err != nil {
			return fmt.Errorf("failed to update credential: %w", err)
		}

		return nil
	})
}

// DeleteCredentials deletes every credential for the website
func (s *Storage) DeleteCredentials(ctx context.Context, website string) (int64, error) {
	var deleted int64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		// Сначала собираем ключи: удалять во время ForEach нельзя
		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var cred models.Credential
			if err := json.Unmarshal(v, &cred); err != nil {
				return fmt.Errorf("failed to unmarshal credential: %w", err)
			}
			if cred.Website == website {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete credential: %w", err)
			}
		}

		deleted = int64(len(keys))
		return nil
	})

	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// ListCredentials returns every credential ordered by ID
func (s *Storage) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	return s.scan(func(*models.Credential) bool { return true }, 0)
}

// ImportCredentials stores all credentials in one transaction
func (s *Storage) ImportCredentials(ctx context.Context, creds []models.Credential) (int, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		for i := range creds {
			if _, err := putNew(bucket, creds[i]); err != nil {
				return fmt.Errorf("failed to import credential %d: %w", i+1, err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return len(creds), nil
}

// scan walks the bucket in ID order and collects matching credentials.
// limit <= 0 means no limit.
func (s *Storage) scan(match func(*models.Credential) bool, limit int) ([]models.Credential, error) {
	var creds []models.Credential

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var cred models.Credential
			if err := json.Unmarshal(v, &cred); err != nil {
				return fmt.Errorf("failed to unmarshal credential: %w", err)
			}

			if !match(&cred) {
				continue
			}

			creds = append(creds, cred)
			if limit > 0 && len(creds) >= limit {
				break
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return creds, nil
}

func putNew(bucket *bbolt.Bucket, cred models.Credential) (int64, error) {
	seq, err := bucket.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate credential id: %w", err)
	}

	cred.ID = int64(seq)

	data, err := json.Marshal(&cred)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := bucket.Put(itob(cred.ID), data); err != nil {
		return 0, fmt.Errorf("failed to save credential: %w", err)
	}

	return cred.ID, nil
}
