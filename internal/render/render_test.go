package render

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"study-shell/internal/quiz"
)

func openedEngine(t *testing.T) *quiz.Engine {
	t.Helper()
	set := quiz.PageQuestionSet{
		{ID: 1, Text: "2+2 <sum>?", Options: []string{"3", "4", "5"}, CorrectIndex: 1, Explanation: "basic math"},
	}
	engine := quiz.NewEngine("p1.html", set, nil, quiz.NewShuffler(rand.NewPCG(1, 1)))
	engine.Init()
	if err := engine.Open(); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return engine
}

func TestOverlayRendersControlsAndEscapes(t *testing.T) {
	engine := openedEngine(t)

	html, err := Overlay(engine.View())
	if err != nil {
		t.Fatalf("Overlay returned error: %v", err)
	}
	if strings.Count(html, `type="radio"`) != 3 {
		t.Fatalf("expected 3 radio controls:\n%s", html)
	}
	if !strings.Contains(html, `name="question_1"`) || !strings.Contains(html, `id="feedback_1"`) {
		t.Fatalf("missing question wiring:\n%s", html)
	}
	if strings.Contains(html, "<sum>") || !strings.Contains(html, "&lt;sum&gt;") {
		t.Fatalf("question text not escaped:\n%s", html)
	}
	if strings.Contains(html, "disabled") {
		t.Fatalf("fresh overlay must not render disabled controls:\n%s", html)
	}
}

func TestOverlayRendersGradedState(t *testing.T) {
	engine := openedEngine(t)
	view := engine.View()

	wrong := -1
	for idx, option := range view.Questions[0].Options {
		if option.Text != "4" {
			wrong = idx
			break
		}
	}
	if _, err := engine.Submit(1, wrong); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	html, err := Overlay(engine.View())
	if err != nil {
		t.Fatalf("Overlay returned error: %v", err)
	}
	for _, want := range []string{"wrong-answer", "correct-answer", "feedback-incorrect", "basic math", "checked", "disabled"} {
		if !strings.Contains(html, want) {
			t.Fatalf("graded overlay missing %q:\n%s", want, html)
		}
	}
}

func TestShellHiddenForInactivePage(t *testing.T) {
	engine := quiz.NewEngine("none.html", nil, nil, nil)
	engine.Init()

	shell, err := Shell(engine.View(), "/api/quiz")
	if err != nil {
		t.Fatalf("Shell returned error: %v", err)
	}
	if shell != "" {
		t.Fatalf("expected no shell for inactive page, got:\n%s", shell)
	}
}

func TestShellVisibility(t *testing.T) {
	set := quiz.PageQuestionSet{{ID: 1, Text: "Q", Options: []string{"a", "b"}}}
	engine := quiz.NewEngine("p1.html", set, nil, nil)
	engine.Init()

	shell, err := Shell(engine.View(), "/api/quiz/")
	if err != nil {
		t.Fatalf("Shell returned error: %v", err)
	}
	if !strings.Contains(shell, `id="quiz-trigger"`) || !strings.Contains(shell, `id="quiz-container"`) {
		t.Fatalf("shell missing host elements:\n%s", shell)
	}
	if !strings.Contains(shell, "display: none;") {
		t.Fatalf("closed overlay should be hidden:\n%s", shell)
	}
	if !strings.Contains(shell, `data-api="/api/quiz"`) {
		t.Fatalf("api base not normalized:\n%s", shell)
	}

	if err := engine.Open(); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	shell, err = Shell(engine.View(), "/api/quiz")
	if err != nil {
		t.Fatalf("Shell returned error: %v", err)
	}
	if !strings.Contains(shell, "display: flex;") {
		t.Fatalf("open overlay should be shown:\n%s", shell)
	}
}

func TestInjectPage(t *testing.T) {
	shell := `<button id="quiz-trigger"></button>`

	page := []byte("<html><BODY><p>content</p></Body></html>")
	got := InjectPage(page, shell)
	want := `<html><BODY><p>content</p><button id="quiz-trigger"></button></Body></html>`
	if string(got) != want {
		t.Fatalf("InjectPage = %s, want %s", got, want)
	}

	if again := InjectPage(got, shell); !bytes.Equal(again, got) {
		t.Fatalf("second injection changed the page: %s", again)
	}

	fragment := InjectPage([]byte("<p>no body</p>"), shell)
	if string(fragment) != "<p>no body</p>"+shell {
		t.Fatalf("InjectPage without body = %s", fragment)
	}

	if untouched := InjectPage(page, ""); !bytes.Equal(untouched, page) {
		t.Fatalf("empty shell must leave the page unchanged")
	}
}

func TestText(t *testing.T) {
	engine := openedEngine(t)
	view := engine.View()

	var buf bytes.Buffer
	Text(&buf, view)
	out := buf.String()
	if !strings.Contains(out, "Q1: 2+2 <sum>?") || !strings.Contains(out, "A. ") || !strings.Contains(out, "C. ") {
		t.Fatalf("unexpected text rendering:\n%s", out)
	}

	engine.Close()
	buf.Reset()
	Text(&buf, engine.View())
	if !strings.Contains(buf.String(), "closed") {
		t.Fatalf("closed overlay text = %q", buf.String())
	}
}
