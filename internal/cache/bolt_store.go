package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	bolt "go.etcd.io/bbolt"
)

const expiryHeaderLen = 8

// BoltStore is a file-backed Store for single-node deployments. Each value is
// stored as an 8-byte big-endian absolute expiry (unix nanoseconds) followed
// by the raw value. Expired entries read as absent and are overwritten on the
// next write.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
}

// Ensure BoltStore implements Store
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the database at path
func OpenBoltStore(path, bucket string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", path, err)
	}
	if bucket == "" {
		bucket = "cache"
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return &BoltStore{db: db, bucket: []byte(bucket), now: time.Now}, nil
}

func (s *BoltStore) GetString(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if len(v) < expiryHeaderLen {
			return nil
		}
		expiresAt := int64(binary.BigEndian.Uint64(v[:expiryHeaderLen]))
		if s.now().UnixNano() >= expiresAt {
			return nil
		}
		// v is only valid for the life of the transaction
		out = string(v[expiryHeaderLen:])
		return nil
	})
	return out, err
}

func (s *BoltStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, expiryHeaderLen+len(value))
	binary.BigEndian.PutUint64(buf[:expiryHeaderLen], uint64(expiryNanos(s.now(), ttl)))
	copy(buf[expiryHeaderLen:], value)

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), buf)
	})
}

// expiryNanos returns now+ttl in unix nanoseconds, saturating at MaxInt64
// for lifetimes that run past the year 2262.
func expiryNanos(now time.Time, ttl time.Duration) int64 {
	base := now.UnixNano()
	if int64(ttl) > math.MaxInt64-base {
		return math.MaxInt64
	}
	return base + int64(ttl)
}

func (s *BoltStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
}

// Purge deletes every expired entry and returns how many were removed
func (s *BoltStore) Purge(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	removed := 0
	now := s.now().UnixNano()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var expired [][]byte
		if err := b.ForEach(func(k, v []byte) error {
			if len(v) < expiryHeaderLen || now >= int64(binary.BigEndian.Uint64(v[:expiryHeaderLen])) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(expired)
		return nil
	})
	return removed, err
}

func (s *BoltStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return fmt.Errorf("bucket %s missing", s.bucket)
		}
		return nil
	})
}

// Close closes the underlying database
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
