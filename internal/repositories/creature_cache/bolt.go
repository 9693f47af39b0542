package creaturecache

import (
	"context"
	"encoding/binary"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/pkg/clock"
)

const (
	defaultBucket   = "creatures"
	boltOpenTimeout = time.Second

	// expiryHeaderSize is the big endian unix expiry stored before each value
	expiryHeaderSize = 8
)

// BoltConfig holds the configuration for the bbolt repository
type BoltConfig struct {
	// Path to the database file, created if missing
	Path string
	// Bucket name (optional, defaults to "creatures")
	Bucket string
	// TTL applied to every entry, 0 keeps entries forever
	TTL   time.Duration
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *BoltConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type boltRepository struct {
	db     *bolt.DB
	bucket []byte
	ttl    time.Duration
	clock  clock.Clock
}

// NewBoltRepository opens (or creates) a bbolt file backed creature cache
func NewBoltRepository(cfg *BoltConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bolt database %s", cfg.Path)
	}

	bucket := []byte(defaultBucket)
	if strings.TrimSpace(cfg.Bucket) != "" {
		bucket = []byte(cfg.Bucket)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create bucket")
	}

	return &boltRepository{
		db:     db,
		bucket: bucket,
		ttl:    cfg.TTL,
		clock:  cfg.Clock,
	}, nil
}

// Ensure boltRepository implements Repository
var _ Repository = (*boltRepository)(nil)

func (r *boltRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.GetCode(err), "get canceled")
	}

	var out []byte
	var found, expired bool
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(r.bucket).Get([]byte(storageKey(input.Key)))
		if v == nil {
			return nil
		}
		if len(v) < expiryHeaderSize {
			return errors.DataLossf("corrupt entry for key %s", input.Key)
		}
		found = true
		expiresAt := int64(binary.BigEndian.Uint64(v[:expiryHeaderSize]))
		if expiresAt > 0 && r.clock.Now().Unix() >= expiresAt {
			expired = true
			return nil
		}
		// bolt values are only valid for the life of the transaction
		out = append([]byte(nil), v[expiryHeaderSize:]...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get cached record")
	}
	if !found || expired {
		return nil, errors.NotFoundf(errNotFound, input.Key)
	}

	return &GetOutput{Data: out}, nil
}

func (r *boltRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.GetCode(err), "put canceled")
	}

	var expiresAt int64
	if r.ttl > 0 {
		expiresAt = r.clock.Now().Add(r.ttl).Unix()
	}

	buf := make([]byte, expiryHeaderSize+len(input.Data))
	binary.BigEndian.PutUint64(buf[:expiryHeaderSize], uint64(expiresAt))
	copy(buf[expiryHeaderSize:], input.Data)

	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(storageKey(input.Key)), buf)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store cached record")
	}

	return &PutOutput{}, nil
}

func (r *boltRepository) Close() error {
	return r.db.Close()
}
