package quiz

const (
	StatusCorrect         = "correct"
	StatusIncorrect       = "incorrect"
	StatusInvalidQuestion = "invalid_question"
	StatusInvalidOption   = "invalid_option"
	StatusAlreadyAnswered = "already_answered"
)

const (
	correctMarker   = "✓ Correct!"
	incorrectMarker = "✗ Incorrect."
)

// Result is the outcome of one submission. CorrectIndex is only meaningful once the
// question has been graded.
type Result struct {
	QuestionID    int      `json:"question_id"`
	Status        string   `json:"status"`
	SelectedIndex int      `json:"selected_index"`
	CorrectIndex  int      `json:"correct_index"`
	Feedback      Feedback `json:"feedback"`
}

// Submit grades a selection of the current opening. A question is graded at most once per
// opening; later submissions report StatusAlreadyAnswered and change nothing.
func (e *Engine) Submit(questionID, displayIndex int) (Result, error) {
	if !e.visible {
		return Result{}, ErrOverlayClosed
	}

	rendered, ok := e.byID[questionID]
	if !ok {
		return Result{QuestionID: questionID, Status: StatusInvalidQuestion, SelectedIndex: displayIndex}, nil
	}
	if displayIndex < 0 || displayIndex >= len(rendered.Controls) {
		return Result{QuestionID: questionID, Status: StatusInvalidOption, SelectedIndex: displayIndex}, nil
	}
	if rendered.locked() {
		return Result{
			QuestionID:    questionID,
			Status:        StatusAlreadyAnswered,
			SelectedIndex: e.answers[questionID],
			CorrectIndex:  rendered.CorrectDisplayIndex,
			Feedback:      rendered.Feedback,
		}, nil
	}

	return e.grade(rendered, displayIndex), nil
}

func (e *Engine) grade(rendered *RenderedQuestion, displayIndex int) Result {
	e.answers[rendered.ID] = displayIndex

	for idx := range rendered.Controls {
		rendered.Controls[idx].Disabled = true
		rendered.Controls[idx].Mark = MarkNone
	}
	rendered.Controls[displayIndex].Checked = true

	status := StatusIncorrect
	if displayIndex == rendered.CorrectDisplayIndex {
		status = StatusCorrect
		rendered.Controls[displayIndex].Mark = MarkCorrect
		rendered.Feedback = Feedback{Kind: FeedbackCorrect, Marker: correctMarker, Explanation: rendered.Explanation}
	} else {
		rendered.Controls[displayIndex].Mark = MarkIncorrect
		rendered.Controls[rendered.CorrectDisplayIndex].Mark = MarkCorrect
		rendered.Feedback = Feedback{Kind: FeedbackIncorrect, Marker: incorrectMarker, Explanation: rendered.Explanation}
	}

	return Result{
		QuestionID:    rendered.ID,
		Status:        status,
		SelectedIndex: displayIndex,
		CorrectIndex:  rendered.CorrectDisplayIndex,
		Feedback:      rendered.Feedback,
	}
}
