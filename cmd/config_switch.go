package cmd

import (
	"fmt"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickConfig()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)
		return nil
	},
}

// pickConfig asks for a profile, starting on the active one.
func pickConfig() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no configs available, run `docscrape config init`")
	}

	items := make([]string, len(list))
	cursor := 0
	for i, c := range list {
		items[i] = c.Label
		if c.Active {
			items[i] += "  (active)"
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     "Select config",
		Items:     items,
		CursorPos: cursor,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("select config: %w", err)
	}

	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
