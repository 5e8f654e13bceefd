package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"study-shell/internal/quiz"
)

// Element ids of the host page contract.
const (
	OverlayID   = "quiz-overlay"
	ContainerID = "quiz-container"
	TriggerID   = "quiz-trigger"
)

var templates = template.Must(template.New("overlay").Parse(overlayHTML))

func init() {
	template.Must(templates.New("trigger").Parse(triggerHTML))
	template.Must(templates.New("shell").Parse(shellHTML))
}

type overlayData struct {
	OverlayID   string
	ContainerID string
	View        quiz.View
}

// Overlay renders the question blocks of a view. The result replaces the content of the
// container element.
func Overlay(view quiz.View) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "overlay", overlayData{
		OverlayID:   OverlayID,
		ContainerID: ContainerID,
		View:        view,
	})
	return buf.String(), err
}

// Trigger renders the fixed quiz button. Empty when the page has no questions.
func Trigger(view quiz.View) (string, error) {
	if !view.TriggerVisible {
		return "", nil
	}
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "trigger", struct{ TriggerID string }{TriggerID})
	return buf.String(), err
}

// Shell renders everything a page needs: trigger, overlay element around the container,
// styles and the script that talks to the quiz API.
func Shell(view quiz.View, apiBase string) (string, error) {
	if !view.TriggerVisible {
		return "", nil
	}
	trigger, err := Trigger(view)
	if err != nil {
		return "", err
	}
	overlay, err := Overlay(view)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "shell", struct {
		OverlayID   string
		ContainerID string
		TriggerID   string
		Visible     bool
		PageKey     string
		APIBase     string
		Trigger     template.HTML
		Overlay     template.HTML
	}{
		OverlayID:   OverlayID,
		ContainerID: ContainerID,
		TriggerID:   TriggerID,
		Visible:     view.Visible,
		PageKey:     view.PageKey,
		APIBase:     strings.TrimRight(apiBase, "/"),
		Trigger:     template.HTML(trigger),
		Overlay:     template.HTML(overlay),
	})
	return buf.String(), err
}

var bodyClose = regexp.MustCompile(`(?i)</body\s*>`)

// InjectPage inserts the shell before the last closing body tag of page, or appends it.
// Pages that already carry the trigger are returned unchanged.
func InjectPage(page []byte, shell string) []byte {
	if shell == "" || bytes.Contains(page, []byte(`id="`+TriggerID+`"`)) {
		return page
	}

	matches := bodyClose.FindAllIndex(page, -1)
	if len(matches) == 0 {
		out := make([]byte, 0, len(page)+len(shell))
		out = append(out, page...)
		return append(out, shell...)
	}

	at := matches[len(matches)-1][0]
	out := make([]byte, 0, len(page)+len(shell))
	out = append(out, page[:at]...)
	out = append(out, shell...)
	return append(out, page[at:]...)
}
