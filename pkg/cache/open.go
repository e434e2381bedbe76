package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNull   = "null"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend  string
	Dir      string // file backend; empty uses DefaultDir
	Capacity int    // memory backend
	Redis    RedisOptions
	Mongo    MongoOptions
}

// Open creates the cache described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNull, "":
		return NewNullCache(), nil
	case BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendMemory:
		return NewMemoryCache(opts.Capacity), nil
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
