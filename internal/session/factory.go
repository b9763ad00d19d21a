package session

import (
	"fmt"

	"ob-go/internal/config"
)

// NewPersisterFromConfig creates a Persister based on the session config type.
func NewPersisterFromConfig(cfg config.SessionConfig) (Persister, error) {
	switch cfg.Type {
	case "file", "":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("dir required for file session storage")
		}
		return NewFilePersister(cfg.Dir), nil
	case "age":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("dir required for age session storage")
		}
		if cfg.IdentityPath == "" {
			return nil, fmt.Errorf("identity_path required for age session storage")
		}
		return NewAgePersister(cfg.Dir, cfg.IdentityPath), nil
	case "memory":
		return NewMemoryPersister(), nil
	default:
		return nil, fmt.Errorf("unknown session storage type: %q", cfg.Type)
	}
}
