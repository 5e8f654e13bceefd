package sessionstore

import (
	"context"
	"fmt"

	"study-shell/internal/config"
)

// Open builds the store selected by the session configuration.
func Open(ctx context.Context, cfg config.Session) (Store, error) {
	switch cfg.Driver {
	case config.SessionDriverMemory, "":
		return NewMemoryStore(cfg.TTL), nil
	case config.SessionDriverSQLite:
		return NewSQLiteStore(cfg.SQLitePath, cfg.TTL)
	case config.SessionDriverRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.TTL)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidSessionDriver, cfg.Driver)
	}
}
