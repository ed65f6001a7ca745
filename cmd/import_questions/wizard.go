package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"question-bank/internal/domain"
	"question-bank/internal/dto"
	"question-bank/internal/service"
)

// asker is the part of terminal.Prompter the wizard needs.
type asker interface {
	domain.Confirmer
	Ask(prompt string) (string, error)
}

// wizard walks an import session from the terminal.
type wizard struct {
	imports service.ImportService
	prompt  asker
	out     io.Writer
	yes     bool
}

// errQuit ends the loop without importing.
var errQuit = errors.New("import abandoned")

func (w *wizard) run(ctx context.Context, text string) (int, error) {
	started, err := w.imports.StartImport(ctx, text)
	if err != nil {
		return 0, err
	}
	w.printReport(started.Report)

	if started.Mode == dto.ModeSingle {
		return w.single(ctx, *started.Record)
	}
	if w.yes {
		res, err := w.imports.BulkCommit(ctx, started.Session.ID)
		if err != nil {
			return 0, err
		}
		return res.Count, nil
	}
	return w.review(ctx, started.Session)
}

func (w *wizard) single(ctx context.Context, rec domain.QuestionRecord) (int, error) {
	w.printRecord(rec)
	if !w.yes && !w.prompt.Confirm("Save this question?") {
		return 0, errQuit
	}
	if _, err := w.imports.SaveQuestion(ctx, rec); err != nil {
		return 0, err
	}
	return 1, nil
}

func (w *wizard) review(ctx context.Context, sess *dto.SessionResponse) (int, error) {
	for {
		finalizing := sess.Status == string(domain.SessionFinalizing)
		prompt := "[a]ccept, [s]kip, [b]ack, [j]ump N, [i]mport all, [q]uit > "
		if finalizing {
			fmt.Fprintf(w.out, "\nAll %d records reviewed.\n", sess.Progress.Total)
			prompt = "[f]inalize, [b]ack, [j]ump N, [q]uit > "
		} else {
			fmt.Fprintf(w.out, "\nRecord %d of %d\n", sess.Progress.Index+1, sess.Progress.Total)
			if sess.Current != nil {
				w.printRecord(*sess.Current)
			}
		}

		answer, err := w.prompt.Ask(prompt)
		if err != nil {
			return 0, err
		}

		var next *dto.SessionResponse
		switch cmd, arg := parseCommand(answer); {
		case cmd == "a" && !finalizing:
			next, err = w.imports.Advance(ctx, sess.ID)
		case cmd == "s" && !finalizing:
			next, err = w.imports.Skip(ctx, sess.ID)
		case cmd == "b":
			next, err = w.imports.Retreat(ctx, sess.ID)
		case cmd == "j":
			n, convErr := strconv.Atoi(arg)
			if convErr != nil {
				fmt.Fprintln(w.out, "usage: j N (record number)")
				continue
			}
			next, err = w.imports.JumpTo(ctx, sess.ID, n-1)
		case cmd == "i" && !finalizing, cmd == "f" && finalizing:
			commit := w.imports.Finalize
			if cmd == "i" {
				commit = w.imports.BulkCommit
			}
			res, commitErr := commit(ctx, sess.ID)
			if commitErr == nil {
				return res.Count, nil
			}
			err = commitErr
		case cmd == "q":
			if w.quit(ctx, sess.ID) {
				return 0, errQuit
			}
			continue
		default:
			continue
		}
		if sess, err = w.apply(ctx, sess, next, err); err != nil {
			return 0, err
		}
	}
}

// apply returns the session to continue with. Rejections are printed and
// the stored session is reloaded so its flags are shown.
func (w *wizard) apply(ctx context.Context, cur, next *dto.SessionResponse, err error) (*dto.SessionResponse, error) {
	if err == nil {
		return next, nil
	}
	if !w.recoverable(err) {
		return nil, err
	}
	reloaded, loadErr := w.imports.GetSession(ctx, cur.ID)
	if loadErr != nil {
		return nil, loadErr
	}
	return reloaded, nil
}

// recoverable prints err when the user can fix it and keep going.
func (w *wizard) recoverable(err error) bool {
	var (
		verrs    domain.ValidationErrors
		finalize *domain.FinalizeError
		persist  *domain.PersistError
	)
	switch {
	case errors.As(err, &finalize):
		fmt.Fprintf(w.out, "record %d is incomplete:\n", finalize.Index+1)
		w.printFieldErrors(finalize.Errors)
	case errors.As(err, &verrs):
		w.printFieldErrors(verrs)
	case errors.As(err, &persist):
		fmt.Fprintf(w.out, "saving failed, nothing was stored: %v\n", persist.Unwrap())
	case errors.Is(err, domain.ErrAtFirstRecord),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCommitInFlight),
		isInvalidInput(err):
		fmt.Fprintln(w.out, err.Error())
	default:
		return false
	}
	return true
}

func (w *wizard) quit(ctx context.Context, id string) bool {
	_, err := w.imports.Cancel(ctx, id, w.prompt)
	return err == nil
}

func (w *wizard) printReport(r dto.ParseReportResponse) {
	fmt.Fprintf(w.out, "Parsed %d record(s)", len(r.Records))
	if len(r.Errors) > 0 {
		fmt.Fprintf(w.out, ", %d line(s) rejected", len(r.Errors))
	}
	fmt.Fprintln(w.out)
	for _, e := range r.Errors {
		fmt.Fprintf(w.out, "  error   %s\n", e.Error())
	}
	for _, wn := range r.Warnings {
		fmt.Fprintf(w.out, "  warning line %d: %s\n", wn.Line, wn.Message)
	}
}

func (w *wizard) printRecord(rec domain.QuestionRecord) {
	fmt.Fprintf(w.out, "  %s / %s / %s", rec.Section, rec.Domain, rec.QuestionType)
	if rec.Difficulty != "" {
		fmt.Fprintf(w.out, " [%s]", rec.Difficulty)
	}
	fmt.Fprintln(w.out)
	if rec.Hidden() {
		fmt.Fprintln(w.out, "  (draft)")
		return
	}
	if rec.PassageImage != "" {
		fmt.Fprintln(w.out, "  passage: <image>")
	} else if rec.PassageText != "" {
		fmt.Fprintf(w.out, "  passage: %s\n", rec.PassageText)
	}
	if rec.QuestionText != "" {
		fmt.Fprintf(w.out, "  question: %s\n", rec.QuestionText)
	}
	c := rec.AnswerChoices
	fmt.Fprintf(w.out, "  A) %s  B) %s  C) %s  D) %s  answer: %s\n", c.A, c.B, c.C, c.D, rec.CorrectAnswer)
}

func (w *wizard) printFieldErrors(errs domain.ValidationErrors) {
	sorted := append(domain.ValidationErrors(nil), errs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Field < sorted[j].Field })
	for _, e := range sorted {
		fmt.Fprintf(w.out, "  %s: %s\n", e.Field, e.Message)
	}
}

func isInvalidInput(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.CodeInvalidInput
}

// parseCommand splits "j 3" into ("j", "3"). Only the first letter of the
// command word counts.
func parseCommand(answer string) (string, string) {
	fields := strings.Fields(strings.ToLower(answer))
	if len(fields) == 0 {
		return "", ""
	}
	cmd, arg := fields[0][:1], strings.Join(fields[1:], " ")
	if arg == "" && len(fields[0]) > 1 && fields[0][0] == 'j' {
		arg = fields[0][1:]
	}
	return cmd, arg
}
