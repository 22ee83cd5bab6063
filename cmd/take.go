package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/attempt"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take <course-id> <lesson-id>",
	Short: "Take a lesson quiz in line mode (no TUI)",
	Long: `Answer a lesson quiz on stdin/stdout.

Type an option number and press Enter. After the last question the score and
a per-question review are shown; the result is saved unless --no-save is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runTake,
}

func init() {
	takeCmd.Flags().Bool("no-save", false, "Do not record the result")
}

func runTake(cmd *cobra.Command, args []string) error {
	noSave, _ := cmd.Flags().GetBool("no-save")

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	course, err := cat.Course(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[0])
	}
	lesson, err := cat.Lesson(args[0], args[1])
	if err != nil {
		return fmt.Errorf("%w: %q", err, args[1])
	}
	a, err := attempt.Start(course, lesson)
	if err != nil {
		return err
	}

	var repo store.EventRepo
	if !noSave {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo = st.EventRepo()
	}

	return takeSession{
		in:  bufio.NewScanner(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}.run(cmd.Context(), a, repo)
}

// errInputClosed ends a session when stdin runs out.
var errInputClosed = errors.New("input closed")

type takeSession struct {
	in  *bufio.Scanner
	out io.Writer
}

func (s takeSession) run(ctx context.Context, a *attempt.Attempt, repo store.EventRepo) error {
	fmt.Fprintf(s.out, "%s · %s\n", a.Course.Title, a.Lesson.Title)
	err := s.complete(a)
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(s.out, "\n(input closed, result discarded)")
		return nil
	}
	if err != nil {
		return err
	}

	if repo == nil {
		_, err := a.Finish()
		return err
	}
	if _, err := a.Save(ctx, repo); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Result saved.")
	return nil
}

// complete answers every question, offering a retry after each run, until
// the learner confirms the result with an empty line.
func (s takeSession) complete(a *attempt.Attempt) error {
	for {
		if err := s.answerAll(a); err != nil {
			return err
		}
		s.printResults(a)

		line, err := s.prompt("\n[r] retry, Enter to finish: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(line, "r") {
			return nil
		}
		a.Retry()
		fmt.Fprintln(s.out)
	}
}

func (s takeSession) answerAll(a *attempt.Attempt) error {
	e := a.Engine
	for !e.Completed() {
		i, q := e.Current()
		total := e.Questions().Len()
		fmt.Fprintf(s.out, "\n── Question %d/%d ──\n%s\n", i+1, total, q.Prompt)
		for j, opt := range q.Options {
			fmt.Fprintf(s.out, "  %d) %s\n", j+1, opt)
		}

		for {
			line, err := s.prompt("Your answer: ")
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(s.out, "Enter a number between 1 and %d.\n", len(q.Options))
				continue
			}
			if err := e.SelectAnswer(n - 1); err != nil {
				fmt.Fprintln(s.out, operationReason(err))
				continue
			}
			break
		}
		if err := e.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func (s takeSession) printResults(a *attempt.Attempt) {
	r := a.Engine.Score()
	verdict := "Keep practising"
	if r.IsPassing(a.Threshold) {
		verdict = "Passed"
	}
	fmt.Fprintf(s.out, "\n── Result: %d/%d correct (%d%%) · %s ──\n", r.Correct, r.Total, r.Percentage, verdict)
	for _, rv := range a.Engine.Review() {
		mark := "✓"
		if !rv.Correct {
			mark = "✗"
		}
		fmt.Fprintf(s.out, "%s %d. %s\n", mark, rv.Index+1, rv.Question.Prompt)
		if !rv.Correct {
			fmt.Fprintf(s.out, "    Your answer: %s\n", rv.SelectedOption())
			fmt.Fprintf(s.out, "    Correct:     %s\n", rv.Question.CorrectOption())
		}
		if rv.Question.Explanation != "" {
			fmt.Fprintf(s.out, "    %s\n", rv.Question.Explanation)
		}
	}
}

func (s takeSession) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func operationReason(err error) string {
	var opErr *quiz.OperationError
	if errors.As(err, &opErr) {
		return opErr.Reason
	}
	return err.Error()
}
