// ABOUTME: Interactive huh prompts for credentials and confirmations
// ABOUTME: Asks only for the fields that were not supplied on the command line

package prompt

import (
	"errors"

	"github.com/DAVEMANUJ/skill-genome-2/internal/client"
	"github.com/DAVEMANUJ/skill-genome-2/internal/form"
	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Missing returns the fields a mode needs that are still empty, in display order
func Missing(mode client.Mode, fields form.Fields) []form.Field {
	var missing []form.Field
	for _, f := range form.RequiredFields(mode) {
		if fields.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Credentials asks for every missing field of the mode and fills them in.
// suggestions are offered for the username input.
func Credentials(mode client.Mode, fields *form.Fields, suggestions []string) error {
	missing := Missing(mode, *fields)
	if len(missing) == 0 {
		return nil
	}

	title := "Log in to SkillGenome"
	if mode == client.ModeSignUp {
		title = "Create a SkillGenome account"
	}

	inputs := make([]huh.Field, 0, len(missing))
	for _, f := range missing {
		inputs = append(inputs, newInput(f, target(fields, f), suggestions))
	}

	err := huh.NewForm(
		huh.NewGroup(inputs...).Title(title),
	).WithTheme(huh.ThemeBase()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// Confirm asks a yes/no question
func Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeBase()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, ErrCancelled
	}
	return ok, err
}

func newInput(f form.Field, value *string, suggestions []string) *huh.Input {
	in := huh.NewInput().
		Title(f.Label()).
		Value(value).
		Validate(func(s string) error {
			if s == "" {
				return errors.New(f.Label() + " is required")
			}
			return nil
		})

	switch f {
	case form.FieldPassword:
		in.EchoMode(huh.EchoModePassword)
	case form.FieldUsername:
		if len(suggestions) > 0 {
			in.Suggestions(suggestions)
		}
	case form.FieldEmail:
		in.Placeholder("you@example.com")
	}
	return in
}

func target(fields *form.Fields, f form.Field) *string {
	switch f {
	case form.FieldName:
		return &fields.Name
	case form.FieldUsername:
		return &fields.Username
	case form.FieldEmail:
		return &fields.Email
	default:
		return &fields.Password
	}
}
