package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the active config with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if errors.Is(err, config.ErrNoConfig) {
			return fmt.Errorf("%w: run `docscrape config init` first", err)
		}
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("Reset %s to defaults", activePath))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		if err := config.SaveYAML(config.DefaultConfig(), activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
