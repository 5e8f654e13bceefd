package render

import (
	"fmt"
	"io"

	"study-shell/internal/quiz"
)

// Text writes the overlay for a terminal. Options are lettered A, B, C... in display
// order; marks are shown as [x] for incorrect and [✓] for correct.
func Text(out io.Writer, view quiz.View) {
	if !view.Visible {
		fmt.Fprintln(out, "(quiz closed)")
		return
	}

	for _, question := range view.Questions {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Q%d: %s\n", question.Number, question.Text)
		for idx, option := range question.Options {
			fmt.Fprintf(out, "  %s%c. %s\n", markPrefix(option), Letter(idx), option.Text)
		}
		if text := question.Feedback.Text(); text != "" {
			fmt.Fprintf(out, "  %s\n", text)
		}
	}
}

// Letter is the display letter of an option index.
func Letter(idx int) rune {
	return rune('A' + idx)
}

func markPrefix(option quiz.Control) string {
	switch option.Mark {
	case quiz.MarkCorrect:
		return "[✓] "
	case quiz.MarkIncorrect:
		return "[x] "
	}
	if option.Checked {
		return "[*] "
	}
	return "    "
}
