package cmd

import (
	"github.com/charmbracelet/huh"
)

// confirm asks a yes/no question on the terminal. Defaults to no.
func confirm(title, description string) (bool, error) {
	ok := false
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if description != "" {
		field = field.Description(description)
	}
	if err := field.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
