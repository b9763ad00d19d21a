package store

import (
	"fmt"
	"os"
	"path/filepath"

	"ob-go/internal/blog"
	"ob-go/internal/config"
)

// NewReadCacheFromConfig builds a read cache from the cache configuration.
// The sqlite cache stores one database per client id under the data
// directory.
func NewReadCacheFromConfig(cfg config.CacheConfig, clientID string) (blog.ReadCache, error) {
	switch cfg.Type {
	case "", "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("cache data_dir is required for sqlite cache")
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		return NewSQLiteCache(filepath.Join(cfg.DataDir, clientID+".db"))
	case "memory":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}
