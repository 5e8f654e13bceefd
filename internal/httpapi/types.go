package httpapi

import "study-shell/internal/quiz"

type pageRequest struct {
	Page string `json:"page"`
}

type answerRequest struct {
	Page       string `json:"page"`
	QuestionID *int   `json:"question_id,omitempty"`
	Option     *int   `json:"option,omitempty"`
	// ControlID activates a control as a click would, instead of QuestionID/Option.
	ControlID string `json:"control_id,omitempty"`
}

type quizResponse struct {
	Page        string       `json:"page"`
	View        quiz.View    `json:"view"`
	OverlayHTML string       `json:"overlay_html"`
	Result      *quiz.Result `json:"result,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Engines int    `json:"engines"`
}

type errorResponse struct {
	Error string `json:"error"`
}
