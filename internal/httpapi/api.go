package httpapi

import (
	"io/fs"
	"time"

	"study-shell/internal/logger"
	"study-shell/internal/quiz"
	"study-shell/internal/sessionstore"
)

const (
	DefaultAPIBase    = "/api/quiz"
	sessionCookieName = "quiz_session"
)

// Options wires the HTTP shell to its content, bank and session storage.
type Options struct {
	Content     fs.FS
	Locator     quiz.PageLocator
	Source      quiz.Source
	Sessions    sessionstore.Store
	Shuffler    *quiz.Shuffler
	Log         *logger.Logger
	APIBase     string
	CORSOrigins []string
	// EngineTTL drops engines of pages that were not touched for this long.
	EngineTTL time.Duration
}

type API struct {
	content  fs.FS
	locator  quiz.PageLocator
	source   quiz.Source
	sessions sessionstore.Store
	shuffler *quiz.Shuffler
	log      *logger.Logger
	apiBase  string
	engines  *Registry
}

func NewAPI(opts Options) *API {
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if opts.Sessions == nil {
		opts.Sessions = sessionstore.NewMemoryStore(sessionstore.DefaultTTL)
	}
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	defaults := quiz.DefaultLocator()
	if opts.Locator.Marker == "" {
		opts.Locator.Marker = defaults.Marker
	}
	if opts.Locator.Suffix == "" {
		opts.Locator.Suffix = defaults.Suffix
	}
	if opts.Locator.BankFile == "" {
		opts.Locator.BankFile = defaults.BankFile
	}
	if opts.EngineTTL <= 0 {
		opts.EngineTTL = sessionstore.DefaultTTL
	}
	return &API{
		content:  opts.Content,
		locator:  opts.Locator,
		source:   opts.Source,
		sessions: opts.Sessions,
		shuffler: opts.Shuffler,
		log:      opts.Log,
		apiBase:  opts.APIBase,
		engines:  NewRegistry(opts.EngineTTL),
	}
}
