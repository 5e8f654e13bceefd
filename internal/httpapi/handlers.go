package httpapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"study-shell/internal/quiz"
	"study-shell/internal/render"
	"study-shell/internal/sessionstore"
)

// HandlePage serves a content file. HTML pages count as a page load: a fresh engine is
// built for the page and the quiz shell is injected before the body ends.
func (a *API) HandlePage(w http.ResponseWriter, r *http.Request) {
	if a.content == nil {
		http.NotFound(w, r)
		return
	}

	marker := "/" + strings.Trim(a.locator.Marker, "/") + "/"
	name := strings.TrimPrefix(path.Clean(r.URL.Path), strings.TrimSuffix(marker, "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	if !isHTML(name) {
		// Page locations may omit the suffix, as page keys do.
		withSuffix := name + a.locator.Suffix
		if info, err := fs.Stat(a.content, withSuffix); err != nil || info.IsDir() || !isHTML(withSuffix) {
			http.ServeFileFS(w, r, a.content, name)
			return
		}
		name = withSuffix
	}

	page, err := fs.ReadFile(a.content, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			http.NotFound(w, r)
			return
		}
		a.log.Error("failed to read page", "page", name, "error", err)
		http.Error(w, "failed to read page", http.StatusInternalServerError)
		return
	}

	sessionID := a.sessionID(w, r)
	log := a.log.With("session_id", sessionID)
	// The flag outlives this request; the engine keeps using it from API calls.
	flag := sessionstore.NewFlag(context.WithoutCancel(r.Context()), a.sessions, sessionID, quiz.OpenFlagName, log)

	engine := quiz.LoadPage(r.Context(), r.URL.EscapedPath(), quiz.PageSetup{
		Locator:  a.locator,
		Source:   a.source,
		Session:  flag,
		Shuffler: a.shuffler,
		Log:      log,
	})
	if engine.Active() {
		a.engines.Put(sessionID, engine)
	}

	shell, err := render.Shell(engine.View(), a.apiBase)
	if err != nil {
		log.Error("failed to render quiz shell", "page_key", engine.PageKey(), "error", err)
		shell = ""
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(render.InjectPage(page, shell))
}

func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	page, err := requirePage(r.URL.Query().Get("page"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	a.respond(w, r, page, nil, func(*quiz.Engine) error { return nil })
}

func (a *API) HandleOpen(w http.ResponseWriter, r *http.Request) {
	a.handlePageAction(w, r, func(engine *quiz.Engine) error {
		return engine.Open()
	})
}

func (a *API) HandleClose(w http.ResponseWriter, r *http.Request) {
	a.handlePageAction(w, r, func(engine *quiz.Engine) error {
		engine.Close()
		return nil
	})
}

func (a *API) HandleReset(w http.ResponseWriter, r *http.Request) {
	a.handlePageAction(w, r, func(engine *quiz.Engine) error {
		engine.Reset()
		return nil
	})
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var request answerRequest
	if err := decodeJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	page, err := requirePage(request.Page)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	controlID := strings.TrimSpace(request.ControlID)
	if controlID == "" && (request.QuestionID == nil || request.Option == nil) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question_id and option are required"})
		return
	}

	var result quiz.Result
	a.respond(w, r, page, &result, func(engine *quiz.Engine) error {
		var err error
		if controlID != "" {
			result, err = engine.Dispatch(controlID)
		} else {
			result, err = engine.Submit(*request.QuestionID, *request.Option)
		}
		return err
	})
}

func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Engines: a.engines.Len()})
}

func (a *API) handlePageAction(w http.ResponseWriter, r *http.Request, action func(*quiz.Engine) error) {
	var request pageRequest
	if err := decodeJSON(r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	page, err := requirePage(request.Page)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	a.respond(w, r, page, nil, action)
}

// respond runs action on the caller's engine for page and writes the resulting view.
func (a *API) respond(w http.ResponseWriter, r *http.Request, page string, result *quiz.Result, action func(*quiz.Engine) error) {
	sessionID, ok := a.existingSessionID(r)
	if !ok {
		writeServiceError(w, ErrEngineNotFound)
		return
	}

	var response quizResponse
	err := a.engines.With(sessionID, page, func(engine *quiz.Engine) error {
		if err := action(engine); err != nil {
			return err
		}
		view := engine.View()
		overlay, err := render.Overlay(view)
		if err != nil {
			return err
		}
		response = quizResponse{Page: page, View: view, OverlayHTML: overlay}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEngineNotFound) {
			a.log.Warn("quiz action failed", "page_key", page, "session_id", sessionID, "error", err)
		}
		writeServiceError(w, err)
		return
	}

	if result != nil {
		response.Result = result
	}
	writeJSON(w, http.StatusOK, response)
}

// sessionID returns the browser session id, issuing a session cookie on first contact.
func (a *API) sessionID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := a.existingSessionID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (a *API) existingSessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", false
	}
	return cookie.Value, true
}
