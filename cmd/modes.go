package cmd

import (
	"github.com/brogergvhs/docscrape/internal/scraper"

	"github.com/spf13/cobra"
)

var (
	flagRange string
	flagList  string
)

// selectable modes loop over index entries and accept --range/--list.
var selectable = map[string]bool{
	"whats-new": true,
	"pep":       true,
}

func init() {
	for _, mode := range scraper.ModeNames() {
		modeCmd := &cobra.Command{
			Use:   mode,
			Short: scraper.ModeDescription(mode),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMode(cmd, mode)
			},
		}

		if selectable[mode] {
			modeCmd.Flags().StringVar(&flagRange, "range", "", "process a range of index entries (e.g. 5-12)")
			modeCmd.Flags().StringVar(&flagList, "list", "", "process specific index entries (e.g. 1,3,5)")
		}

		rootCmd.AddCommand(modeCmd)
	}
}
