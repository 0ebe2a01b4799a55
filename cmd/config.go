package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagConfigYAML bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and manage profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := loadConfig()
		if err != nil {
			return err
		}

		if flagConfigYAML {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		}

		fmt.Printf("Effective config (source: %s)\n\n", used)
		cfg.Print()
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigYAML, "yaml", false, "print the merged config as YAML")
	rootCmd.AddCommand(configCmd)
}
