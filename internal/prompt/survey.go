package prompt

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

const pageSize = 12

// Survey asks on the controlling terminal.
type Survey struct {
	opts []survey.AskOpt
}

// NewSurvey returns a Survey using the process stdio.
func NewSurvey(opts ...survey.AskOpt) *Survey {
	return &Survey{opts: opts}
}

func (s *Survey) SelectOne(message string, options []Option) (int, error) {
	q := &survey.Select{
		Message:  message,
		Options:  labels(options),
		PageSize: pageSize,
		Description: func(_ string, index int) string {
			return options[index].Description
		},
	}

	var index int
	if err := survey.AskOne(q, &index, s.opts...); err != nil {
		return -1, translate(err)
	}
	return index, nil
}

func (s *Survey) SelectMany(message string, options []Option) ([]int, error) {
	q := &survey.MultiSelect{
		Message:  message,
		Options:  labels(options),
		PageSize: pageSize,
		Description: func(_ string, index int) string {
			return options[index].Description
		},
	}

	var indices []int
	if err := survey.AskOne(q, &indices, s.opts...); err != nil {
		return nil, translate(err)
	}
	return indices, nil
}

func (s *Survey) Input(message, def string) (string, error) {
	q := &survey.Input{Message: message, Default: def}

	var answer string
	if err := survey.AskOne(q, &answer, s.opts...); err != nil {
		return "", translate(err)
	}
	return answer, nil
}

func translate(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}
