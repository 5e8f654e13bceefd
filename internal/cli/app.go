package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"study-shell/internal/quiz"
	"study-shell/internal/render"
)

const maxAttempts = 3

// Run reads commands from in until exit or EOF. Command failures are printed and the
// loop goes on; only read errors end it with an error.
func Run(ctx context.Context, in io.Reader, out io.Writer, controller Controller) error {
	reader := bufio.NewReader(in)

	view, err := controller.View(ctx)
	if err != nil {
		return err
	}
	if !view.TriggerVisible {
		fmt.Fprintf(out, "No questions for page %q.\n", view.PageKey)
		return nil
	}

	fmt.Fprintf(out, "Questions available for %s.\n", view.PageKey)
	if view.Visible {
		fmt.Fprintln(out, "Quiz restored from the previous session.")
		render.Text(out, view)
	}
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			if readErr != nil {
				fmt.Fprintln(out)
				return nil
			}
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "show":
			view, err = controller.View(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			render.Text(out, view)
		case "open":
			view, err = controller.Open(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			render.Text(out, view)
		case "close":
			if _, err := controller.Close(ctx); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Quiz closed.")
		case "reset":
			view, err = controller.Reset(ctx)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			render.Text(out, view)
		case "answer":
			if err := runAnswer(ctx, reader, out, controller, args[1:]); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		default:
			fmt.Fprintf(out, "unknown command %q\n", args[0])
			printHelp(out)
		}

		if readErr != nil {
			return nil
		}
	}
}

func runAnswer(ctx context.Context, reader *bufio.Reader, out io.Writer, controller Controller, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(out, "usage: answer <question number> [letter]")
		return nil
	}

	view, err := controller.View(ctx)
	if err != nil {
		return err
	}
	if !view.Visible {
		return errors.New("open the quiz first")
	}

	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 || number > len(view.Questions) {
		return fmt.Errorf("question number must be between 1 and %d", len(view.Questions))
	}
	question := view.Questions[number-1]

	var option int
	if len(args) == 2 {
		idx, ok := parseLetter(args[1], len(question.Options))
		if !ok {
			return fmt.Errorf("option must be a letter A-%c", render.Letter(len(question.Options)-1))
		}
		option = idx
	} else {
		fmt.Fprintf(out, "Your answer (A-%c): ", render.Letter(len(question.Options)-1))
		idx, ok := getAnswer(reader, out, len(question.Options))
		if !ok {
			fmt.Fprintln(out, "Skipping.")
			return nil
		}
		option = idx
	}

	result, view, err := controller.Submit(ctx, question.ID, option)
	if err != nil {
		return err
	}
	printResult(out, result)
	for _, updated := range view.Questions {
		if updated.ID == question.ID {
			render.Text(out, quiz.View{Visible: true, Questions: []quiz.QuestionView{updated}})
		}
	}
	return nil
}

func printResult(out io.Writer, result quiz.Result) {
	switch result.Status {
	case quiz.StatusCorrect:
		fmt.Fprintln(out, "Correct!")
	case quiz.StatusIncorrect:
		fmt.Fprintf(out, "Wrong. Correct answer was %c\n", render.Letter(result.CorrectIndex))
	case quiz.StatusAlreadyAnswered:
		fmt.Fprintln(out, "Already answered; reset or reopen the quiz to try again.")
	case quiz.StatusInvalidQuestion:
		fmt.Fprintf(out, "No question with id %d.\n", result.QuestionID)
	case quiz.StatusInvalidOption:
		fmt.Fprintln(out, "No such option.")
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  open")
	fmt.Fprintln(out, "  close")
	fmt.Fprintln(out, "  reset")
	fmt.Fprintln(out, "  answer <question number> [letter]")
	fmt.Fprintln(out, "  show")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  exit")
}

func parseLetter(value string, optionCount int) (int, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if optionCount < 1 || len(value) != 1 {
		return -1, false
	}
	letter := value[0]
	maxLetter := byte('A' + optionCount - 1)
	if letter < 'A' || letter > maxLetter {
		return -1, false
	}
	return int(letter - 'A'), true
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		userAnswer, err := reader.ReadString('\n')
		if idx, ok := parseLetter(userAnswer, optionCount); ok {
			return idx, true
		}
		if err != nil {
			return -1, false
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return -1, false
}
