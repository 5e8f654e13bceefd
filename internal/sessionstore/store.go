package sessionstore

import (
	"context"
	"time"

	"study-shell/internal/logger"
)

// DefaultTTL bounds how long a flag outlives its last write.
const DefaultTTL = 12 * time.Hour

// Store keeps named boolean flags per browser session. A flag that is not set and a flag
// that expired are indistinguishable.
type Store interface {
	Set(ctx context.Context, sessionID, name string) error
	// Take reports whether the flag was set and clears it.
	Take(ctx context.Context, sessionID, name string) (bool, error)
	Clear(ctx context.Context, sessionID, name string) error
	Close() error
}

// Flag binds one flag of one session to the quiz engine's SessionState. Backend failures
// are logged and read as "not set" so the page keeps working.
type Flag struct {
	ctx       context.Context
	store     Store
	sessionID string
	name      string
	log       *logger.Logger
}

func NewFlag(ctx context.Context, store Store, sessionID, name string, log *logger.Logger) *Flag {
	if log == nil {
		log = logger.NewNop()
	}
	return &Flag{
		ctx:       ctx,
		store:     store,
		sessionID: sessionID,
		name:      name,
		log:       log,
	}
}

func (f *Flag) MarkOpenAcrossReload() {
	if err := f.store.Set(f.ctx, f.sessionID, f.name); err != nil {
		f.log.Warn("failed to set session flag", "flag", f.name, "session_id", f.sessionID, "error", err)
	}
}

func (f *Flag) ConsumeOpenFlagIfSet() bool {
	set, err := f.store.Take(f.ctx, f.sessionID, f.name)
	if err != nil {
		f.log.Warn("failed to read session flag", "flag", f.name, "session_id", f.sessionID, "error", err)
		return false
	}
	return set
}

func (f *Flag) ClearOpenFlag() {
	if err := f.store.Clear(f.ctx, f.sessionID, f.name); err != nil {
		f.log.Warn("failed to clear session flag", "flag", f.name, "session_id", f.sessionID, "error", err)
	}
}

func flagKey(sessionID, name string) string {
	return sessionID + "::" + name
}
