package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"study-shell/internal/quiz"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEngineNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "page not loaded in this session"})
	case errors.Is(err, quiz.ErrNoQuestions):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "page has no questions"})
	case errors.Is(err, quiz.ErrOverlayClosed):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "quiz overlay is closed"})
	case errors.Is(err, quiz.ErrUnknownControl):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown answer control"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func requirePage(page string) (string, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return "", errors.New("page is required")
	}
	return page, nil
}

func isHTML(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethod string) {
	w.Header().Set("Allow", allowedMethod)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
