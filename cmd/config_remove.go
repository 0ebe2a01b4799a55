package cmd

import (
	"fmt"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/spf13/cobra"
)

var flagForceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		if active, _ := config.CurrentLabel(); active == label && !flagForceRemove {
			ok, err := confirm(fmt.Sprintf("Config %q is active, remove it and fall back to Default", label))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := config.RemoveConfig(label); err != nil {
			return err
		}

		fmt.Printf("Removed configuration %q\n", label)
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&flagForceRemove, "force", "f", false, "do not ask before removing the active config")
	configCmd.AddCommand(configRemoveCmd)
}
