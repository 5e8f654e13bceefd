package quiz

import (
	"context"

	"study-shell/internal/logger"
)

// PageSetup is everything a page load needs to build its Engine.
type PageSetup struct {
	Locator  PageLocator
	Source   Source
	Session  SessionState
	Shuffler *Shuffler
	Log      *logger.Logger
}

// LoadPage runs the page initialization for a content location: resolve the page key,
// load the bank once, build the Engine and Init it. Every failure leaves an inactive
// Engine behind; the page itself is never blocked.
func LoadPage(ctx context.Context, location string, setup PageSetup) *Engine {
	log := setup.Log
	if log == nil {
		log = logger.NewNop()
	}

	pageKey, err := setup.Locator.PageKey(location)
	if err != nil {
		log.Warn("could not detect page key", "location", location, "error", err)
		engine := NewEngine("", nil, setup.Session, setup.Shuffler)
		engine.Init()
		return engine
	}

	set, _ := NewLoader(setup.Source, log).Load(ctx, pageKey)
	engine := NewEngine(pageKey, set, setup.Session, setup.Shuffler)
	if engine.Init() {
		log.Debug("quiz overlay restored after reload", "page_key", pageKey)
	}
	return engine
}
