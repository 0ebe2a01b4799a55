package cmd

import (
	"fmt"
	"os"

	"github.com/brogergvhs/docscrape/internal/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}

		if len(list) == 0 {
			fmt.Println("No configs yet. Run `docscrape config init`.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Label", "Path", "Active"})

		for _, c := range list {
			mark := ""
			if c.Active {
				mark = "*"
			}
			t.AppendRow(table.Row{c.Label, c.Path, mark})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
