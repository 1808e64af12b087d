package ui

import (
	survey "github.com/AlecAivazis/survey/v2"
)

// Confirm asks a yes/no question on the terminal, defaulting to no. Used
// before the irreversible steps: pushing a release tag and purging a build
// output directory.
func (l *Logger) Confirm(text string) (bool, error) {
	answer := false
	prompt := &survey.Confirm{
		Message: text,
		Default: false,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, err
	}
	return answer, nil
}
