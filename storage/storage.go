package storage

import (
	"errors"
	"fmt"

	"ecotravel/config"
	"ecotravel/db"
	"ecotravel/logger"
)

// KeyValueStore is a synchronous string store. Writes are complete when Set returns.
type KeyValueStore interface {
	// Get returns ok=false when nothing is stored under key
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type StorageType string

const (
	StorageTypeDisk   StorageType = "disk"
	StorageTypeDB     StorageType = "db"
	StorageTypeRedis  StorageType = "redis"
	StorageTypeS3     StorageType = "s3"
	StorageTypeMemory StorageType = "memory"
)

var ErrUnknownStorageType = errors.New("unknown storage type")

// New creates the durable store configured through the config package
func New(storageType StorageType) (KeyValueStore, error) {
	logger.Log.WithField("type", storageType).Info("Opening durable store")
	switch storageType {
	case StorageTypeDisk, "":
		return NewDiskStore(config.STORE_DIR)
	case StorageTypeDB:
		instance, err := db.Open(config.MYSQL_DSN, config.SQLITE_FILE)
		if err != nil {
			return nil, err
		}
		return NewDBStore(instance)
	case StorageTypeRedis:
		return NewRedisStore(config.REDIS_ADDR, config.REDIS_PASSWORD, config.REDIS_DB, config.REDIS_PREFIX)
	case StorageTypeS3:
		return NewS3Store(S3Options{
			Bucket:   config.S3_BUCKET,
			Region:   config.S3_REGION,
			Endpoint: config.S3_ENDPOINT,
			Key:      config.S3_KEY,
			Secret:   config.S3_SECRET,
			Prefix:   config.S3_PREFIX,
		})
	case StorageTypeMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStorageType, storageType)
}

type prefixedStore struct {
	base   KeyValueStore
	prefix string
}

// WithPrefix scopes every key of base under prefix
func WithPrefix(base KeyValueStore, prefix string) KeyValueStore {
	return &prefixedStore{base: base, prefix: prefix}
}

func (s *prefixedStore) Get(key string) (string, bool, error) {
	return s.base.Get(s.prefix + key)
}

func (s *prefixedStore) Set(key, value string) error {
	return s.base.Set(s.prefix+key, value)
}
