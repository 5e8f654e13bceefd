package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(opts Options) http.Handler {
	api := NewAPI(opts)
	marker := strings.Trim(api.locator.Marker, "/")

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(api.log), middleware.Recoverer)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		allowed := http.MethodPost
		if !strings.HasPrefix(r.URL.Path, api.apiBase) || strings.HasSuffix(r.URL.Path, "/state") {
			allowed = http.MethodGet
		}
		writeMethodNotAllowed(w, allowed)
	})

	r.Get("/healthz", api.HandleHealth)
	r.Get("/"+marker+"/*", api.HandlePage)

	r.Route(api.apiBase, func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Get("/state", api.HandleState)
		r.Post("/open", api.HandleOpen)
		r.Post("/close", api.HandleClose)
		r.Post("/reset", api.HandleReset)
		r.Post("/answers", api.HandleAnswer)
	})

	return r
}
