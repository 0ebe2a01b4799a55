package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/spf13/cobra"
)

var flagInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config and make it active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Profiles directory:", config.ConfigsDir())
		fmt.Println()
		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		if !flagInitYes {
			ok, err := confirm("Create Default config")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		path, err := config.InitDefaultConfig()
		switch {
		case errors.Is(err, os.ErrExist):
			fmt.Println("Configuration already exists at:", path)
			fmt.Println("It is now active. Use `docscrape config reset` to recreate it.")
			return nil
		case err != nil:
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
