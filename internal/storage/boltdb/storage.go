package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/gophvault/internal/storage"
)

var (
	// BoltDB bucket names
	bucketCredentials = []byte("credentials")
	bucketMaster      = []byte("master")
)

// Compile-time interface satisfaction check.
var _ storage.Storage = (*Storage)(nil)

// Storage represents BoltDB storage implementation
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Timeout: не висим вечно, если файл заблокирован другим процессом
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return fmt.Errorf("failed to create credentials bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketMaster); err != nil {
			return fmt.Errorf("failed to create master bucket: %w", err)
		}

		return nil
	})
}

// itob encodes an ID as a big-endian key so cursor order equals ID order.
func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
