package metadata

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

type Options struct {
	Driver string
	// DSN is the SQLite file path or the Redis hash key, depending on Driver.
	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Passphrase, when set, wraps the backend in a SealedRepository.
	Passphrase []byte
}

// Open builds the Repository described by opts. The returned func releases
// the backend and is never nil.
func Open(ctx context.Context, opts Options) (Repository, func() error, error) {
	var (
		repo    Repository
		closeFn = func() error { return nil }
	)

	switch opts.Driver {
	case DriverSQLite, "":
		db, err := OpenSQLite(ctx, opts.DSN)
		if err != nil {
			return nil, closeFn, err
		}
		repo, closeFn = NewSQLiteRepository(db), db.Close
	case DriverMemory:
		m, err := NewMemRepository()
		if err != nil {
			return nil, closeFn, err
		}
		repo = m
	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, closeFn, fmt.Errorf("redis ping: %w", err)
		}
		repo, closeFn = NewRedisRepository(rdb, opts.DSN), rdb.Close
	default:
		return nil, closeFn, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}

	if len(opts.Passphrase) > 0 {
		sealed, err := NewSealedRepository(ctx, repo, opts.Passphrase)
		if err != nil {
			_ = closeFn()
			return nil, func() error { return nil }, err
		}
		repo = sealed
	}

	return repo, closeFn, nil
}
