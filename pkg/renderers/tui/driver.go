package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question is one prompt derived from a leaf control.
type Question struct {
	// Name is the dotted field path the answer is stored under.
	Name     string
	Message  string
	Help     string
	Default  string
	Required bool
	// Multiline asks for free text over several lines.
	Multiline bool
	// Choices and Selected drive Choose.
	Choices  []string
	Selected int
	// Checked is the Confirm default.
	Checked bool
}

// PromptDriver abstracts the terminal so prompting can be tested without one.
type PromptDriver interface {
	Text(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
	Choose(ctx context.Context, q Question) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out      io.Writer
	pageSize int
	opts     []survey.AskOpt
}

// NewSurveyDriver returns a PromptDriver backed by survey. Section headers and
// validation reports go to out, or stdout when out is nil. opts apply to every
// question.
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, pageSize: 10, opts: opts}
}

func (d *surveyDriver) Text(ctx context.Context, q Question) (string, error) {
	var prompt survey.Prompt = &survey.Input{Message: q.Message, Help: q.Help, Default: q.Default}
	if q.Multiline {
		prompt = &survey.Multiline{Message: q.Message, Help: q.Help, Default: q.Default}
	}
	var answer string
	var extra []survey.AskOpt
	if q.Required {
		extra = append(extra, survey.WithValidator(survey.Required))
	}
	err := d.ask(ctx, q, prompt, &answer, extra...)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, q Question) (bool, error) {
	var answer bool
	err := d.ask(ctx, q, &survey.Confirm{Message: q.Message, Help: q.Help, Default: q.Checked}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, q Question) (int, error) {
	if len(q.Choices) == 0 {
		return 0, fmt.Errorf("tui: %s: no choices", q.Name)
	}
	prompt := &survey.Select{Message: q.Message, Options: q.Choices, Help: q.Help}
	if q.Selected >= 0 && q.Selected < len(q.Choices) {
		prompt.Default = q.Choices[q.Selected]
	}
	var answer int
	err := d.ask(ctx, q, prompt, &answer, survey.WithPageSize(d.pageSize))
	return answer, err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask runs one survey prompt. Ctrl-C maps to ErrAborted.
func (d *surveyDriver) ask(ctx context.Context, q Question, prompt survey.Prompt, answer any, extra ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := append(append([]survey.AskOpt{}, d.opts...), extra...)
	if err := survey.AskOne(prompt, answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return fmt.Errorf("tui: %s: %w", q.Name, err)
	}
	return nil
}
