package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoQuestions    = errors.New("page has no questions")
	ErrOverlayClosed  = errors.New("quiz overlay is closed")
	ErrUnknownControl = errors.New("unknown answer control")
)

type Mark string

const (
	MarkNone      Mark = ""
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

type FeedbackKind string

const (
	FeedbackNone      FeedbackKind = ""
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
)

type Feedback struct {
	Kind        FeedbackKind `json:"kind"`
	Marker      string       `json:"marker"`
	Explanation string       `json:"explanation"`
}

// Text is the feedback slot content; empty until the question is graded.
func (f Feedback) Text() string {
	if f.Kind == FeedbackNone {
		return ""
	}
	return strings.TrimSpace(f.Marker + " " + f.Explanation)
}

// Control is one single-select answer control, in display order.
type Control struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	OriginalIndex int    `json:"-"`
	Checked       bool   `json:"checked"`
	Disabled      bool   `json:"disabled"`
	Mark          Mark   `json:"mark,omitempty"`
}

// RenderedQuestion is a question with its option permutation for one opening.
type RenderedQuestion struct {
	Question
	Controls            []Control
	CorrectDisplayIndex int
	Feedback            Feedback
}

func (r *RenderedQuestion) locked() bool {
	return len(r.Controls) > 0 && r.Controls[0].Disabled
}

// Engine is the quiz of one page load. It is not safe for concurrent use.
type Engine struct {
	pageKey  string
	set      PageQuestionSet
	session  SessionState
	shuffler *Shuffler

	initialized    bool
	triggerVisible bool
	visible        bool

	rendered []*RenderedQuestion
	byID     map[int]*RenderedQuestion
	answers  map[int]int
	handlers map[string]func() (Result, error)
}

func NewEngine(pageKey string, set PageQuestionSet, session SessionState, shuffler *Shuffler) *Engine {
	if session == nil {
		session = noopSession{}
	}
	return &Engine{
		pageKey:  pageKey,
		set:      set,
		session:  session,
		shuffler: shuffler,
		byID:     make(map[int]*RenderedQuestion),
		answers:  make(map[int]int),
		handlers: make(map[string]func() (Result, error)),
	}
}

func (e *Engine) PageKey() string { return e.pageKey }

// Active reports whether the page has questions at all.
func (e *Engine) Active() bool { return len(e.set) > 0 }

func (e *Engine) Visible() bool { return e.visible }

func (e *Engine) TriggerVisible() bool { return e.triggerVisible }

// Init arms the trigger when the page has questions and reopens the overlay when the
// reload flag was left set. The flag is consumed. Calling Init again does nothing.
func (e *Engine) Init() (reopened bool) {
	if e.initialized {
		return false
	}
	e.initialized = true

	if !e.Active() {
		return false
	}
	e.triggerVisible = true

	if e.session.ConsumeOpenFlagIfSet() {
		e.render()
		e.visible = true
		return true
	}
	return false
}

// Open reshuffles and rerenders every question, discarding earlier answers.
func (e *Engine) Open() error {
	if !e.Active() {
		return ErrNoQuestions
	}
	e.render()
	e.visible = true
	e.session.MarkOpenAcrossReload()
	return nil
}

// Close hides the overlay and drops the control handlers. Answers and the current
// rendering are kept.
func (e *Engine) Close() {
	e.visible = false
	e.session.ClearOpenFlag()
	clear(e.handlers)
}

// Reset clears every answer without reshuffling.
func (e *Engine) Reset() {
	clear(e.answers)
	for _, rendered := range e.rendered {
		for idx := range rendered.Controls {
			rendered.Controls[idx].Checked = false
			rendered.Controls[idx].Disabled = false
			rendered.Controls[idx].Mark = MarkNone
		}
		rendered.Feedback = Feedback{}
	}
}

// Dispatch activates the control with the given id, as a click on it would.
func (e *Engine) Dispatch(controlID string) (Result, error) {
	handler, ok := e.handlers[controlID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownControl, controlID)
	}
	return handler()
}

// Answers returns a copy of the selections of the current opening.
func (e *Engine) Answers() map[int]int {
	out := make(map[int]int, len(e.answers))
	for id, idx := range e.answers {
		out[id] = idx
	}
	return out
}

func (e *Engine) render() {
	clear(e.handlers)
	clear(e.answers)
	clear(e.byID)

	type taggedOption struct {
		text          string
		originalIndex int
	}

	questions := Shuffle(e.shuffler, e.set)
	e.rendered = make([]*RenderedQuestion, 0, len(questions))

	for _, question := range questions {
		tagged := make([]taggedOption, len(question.Options))
		for idx, text := range question.Options {
			tagged[idx] = taggedOption{text: text, originalIndex: idx}
		}
		shuffled := Shuffle(e.shuffler, tagged)

		rendered := &RenderedQuestion{
			Question:            question,
			Controls:            make([]Control, len(shuffled)),
			CorrectDisplayIndex: -1,
		}
		for displayIndex, option := range shuffled {
			rendered.Controls[displayIndex] = Control{
				ID:            ControlID(question.ID, displayIndex),
				Text:          option.text,
				OriginalIndex: option.originalIndex,
			}
			if option.originalIndex == question.CorrectIndex {
				rendered.CorrectDisplayIndex = displayIndex
			}

			questionID, selected := question.ID, displayIndex
			e.handlers[rendered.Controls[displayIndex].ID] = func() (Result, error) {
				return e.Submit(questionID, selected)
			}
		}

		e.rendered = append(e.rendered, rendered)
		e.byID[question.ID] = rendered
	}
}

// ControlID names the control of a question option at a display index.
func ControlID(questionID, displayIndex int) string {
	return fmt.Sprintf("q%d_opt%d", questionID, displayIndex)
}
