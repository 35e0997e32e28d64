package ui

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"gitoutofhours/pkg/errors"
)

// askOne is replaced in tests
var askOne = survey.AskOne

// PickAuthor lets the user choose one of authors interactively
func PickAuthor(authors []string) (string, error) {
	if len(authors) == 0 {
		return "", errors.New(errors.ErrCodeUserInput, "No authors to pick from")
	}
	if len(authors) == 1 {
		return authors[0], nil
	}

	var selected string
	prompt := &survey.Select{
		Message:  "Select an author:",
		Options:  authors,
		PageSize: 10,
		Filter: func(filter string, value string, index int) bool {
			return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
		},
	}

	if err := askOne(prompt, &selected); err != nil {
		return "", cancelled(err)
	}
	return selected, nil
}
