package cmd

import (
	"fmt"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/spf13/cobra"
)

var flagAddSwitch bool

var configAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Create a new config filled with defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateConfig(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Created new config: %s\n", path)

		if flagAddSwitch {
			if err := config.SwitchConfig(args[0]); err != nil {
				return err
			}
			fmt.Println("Switched to:", args[0])
		}
		return nil
	},
}

func init() {
	configAddCmd.Flags().BoolVar(&flagAddSwitch, "switch", false, "make the new config active")
	configCmd.AddCommand(configAddCmd)
}
