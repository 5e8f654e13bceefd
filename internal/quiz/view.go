package quiz

// View is a snapshot of what the overlay shows. Renderers only read Views.
type View struct {
	PageKey        string         `json:"page_key"`
	TriggerVisible bool           `json:"trigger_visible"`
	Visible        bool           `json:"visible"`
	Questions      []QuestionView `json:"questions"`
}

type QuestionView struct {
	Number   int       `json:"number"`
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	Options  []Control `json:"options"`
	Feedback Feedback  `json:"feedback"`
	Answered bool      `json:"answered"`
}

func (e *Engine) View() View {
	view := View{
		PageKey:        e.pageKey,
		TriggerVisible: e.triggerVisible,
		Visible:        e.visible,
		Questions:      make([]QuestionView, 0, len(e.rendered)),
	}
	for idx, rendered := range e.rendered {
		_, answered := e.answers[rendered.ID]
		view.Questions = append(view.Questions, QuestionView{
			Number:   idx + 1,
			ID:       rendered.ID,
			Text:     rendered.Text,
			Options:  append([]Control(nil), rendered.Controls...),
			Feedback: rendered.Feedback,
			Answered: answered,
		})
	}
	return view
}
