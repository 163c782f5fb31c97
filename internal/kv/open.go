package kv

import (
	"context"
	"fmt"
)

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a Store backend.
type Options struct {
	Driver      string
	Dir         string
	RedisURL    string
	RedisPrefix string
	DBDSN       string
}

// Open builds the configured Store. The returned close function releases
// any connection the backend holds and is never nil.
func Open(ctx context.Context, opts Options) (Store, func(), error) {
	noop := func() {}

	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), noop, nil

	case DriverFile, "":
		s, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case DriverRedis:
		client, err := NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client, opts.RedisPrefix), func() { client.Close() }, nil

	case DriverPostgres:
		pool, err := NewPostgresPool(ctx, opts.DBDSN)
		if err != nil {
			return nil, noop, err
		}
		s := NewPostgresStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
