package cmd

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// confirm asks a yes/no question; anything but "y" is a no.
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
